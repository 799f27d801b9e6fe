package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	"github.com/elianvancutsem/folio/content"
)

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print an indexed document, e.g. folio show /blog/hello-world",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		r, err := app.Record(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeRecord(cmd.OutOrStdout(), r)
	},
}

type recordView struct {
	Path        string   `yaml:"path"`
	Collection  string   `yaml:"collection"`
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Author      string   `yaml:"author,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	CreatedAt   string   `yaml:"createdAt"`
	UpdatedAt   string   `yaml:"updatedAt"`
	HasBody     bool     `yaml:"hasBody"`
}

func writeRecord(w io.Writer, r content.Record) error {
	_, hasBody := r.Body()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recordView{
		Path:        r.Path,
		Collection:  r.Collection,
		Slug:        r.Slug,
		Title:       r.Title,
		Description: r.Description,
		Author:      r.Author,
		Tags:        r.Tags,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
		HasBody:     hasBody,
	}); err != nil {
		return err
	}
	return enc.Close()
}
