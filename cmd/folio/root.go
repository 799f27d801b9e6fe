package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/elianvancutsem/folio"
	"github.com/elianvancutsem/folio/log"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:               "folio",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Folio builds the feeds, sitemap and robots.txt of a content blog",
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to folio.yaml")
	rootCmd.AddCommand(buildCmd, serveCmd, showCmd, newCmd, versionCmd)
}

func newApp() (*folio.App, error) {
	cfg, err := folio.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return folio.New(cfg), nil
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index the content and write feeds, sitemap.xml and robots.txt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			_ = log.L().Sync()
		}()

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.Build(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build, then serve the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			_ = log.L().Sync()
		}()

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := app.Build(ctx); err != nil {
			return err
		}
		err = app.Serve(ctx)
		log.S().Info("server stopped")
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
	},
}
