package folio

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/elianvancutsem/folio/theme"
)

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/theme.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.POST("/theme/", handleTheme)
	e.Match([]string{http.MethodGet, http.MethodHead}, "/*", a.handleOutput)
}

// handleOutput serves a generated file from OutputDir. Directories resolve
// to their index.html.
func (a *App) handleOutput(c echo.Context) error {
	name := path.Clean("/" + c.Param("*"))
	file := filepath.Join(a.Config.OutputDir, filepath.FromSlash(name))

	info, err := a.fs.Stat(file)
	if err == nil && info.IsDir() {
		file = filepath.Join(file, "index.html")
		info, err = a.fs.Stat(file)
	}
	if os.IsNotExist(err) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	f, err := a.fs.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
	return nil
}

type themeResponse struct {
	Theme   theme.Theme `json:"theme"`
	Classes []string    `json:"classes"`
}

// handleTheme stores the submitted theme, or the opposite of the current one
// when none is given, and re-resolves it as a changedMode event would.
func handleTheme(c echo.Context) error {
	env := theme.NewHTTPEnvironment(c.Response(), c.Request())
	selector := theme.NewSelector(env)
	current := selector.Resolve()

	next := theme.Theme(c.FormValue("theme"))
	if next == "" {
		next = theme.Dark
		if current == theme.Dark {
			next = theme.Light
		}
	}
	env.WriteCookie(theme.CookieName, string(next))

	resolved, _ := selector.HandleEvent(theme.ChangedMode)
	return c.JSON(http.StatusOK, themeResponse{Theme: resolved, Classes: env.Classes()})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, NotFoundPage())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Errorf("server error: %v", err)
		_ = RenderStatus(c, code, ServerErrorPage())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
