package folio

import (
	"bytes"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/elianvancutsem/folio/log"
	"github.com/elianvancutsem/folio/theme"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.WWWRedirectWithConfig(middleware.RedirectConfig{
		Code: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			return c.Request().Host != a.bareHost()
		},
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.log.Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:",
		HSTSMaxAge:            31536000,
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/public") || path.Ext(p) != ""
		},
	}))

	e.Use(cacheControlMiddleware)
	e.Use(themeMiddleware)
}

func (a *App) bareHost() string {
	u, err := url.Parse(a.Config.Hostname)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		switch {
		case strings.HasPrefix(p, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case p == "/theme/":
			c.Response().Header().Set("Cache-Control", "no-store")
		case path.Ext(p) == ".xml" || path.Ext(p) == ".json" || p == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=1800")
		default:
			c.Response().Header().Set("Cache-Control", "private, max-age=300")
		}
		return next(c)
	}
}

// pageBuffer holds a response back so the page can be rewritten before it
// reaches the client.
type pageBuffer struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (p *pageBuffer) WriteHeader(code int) { p.code = code }

func (p *pageBuffer) Write(b []byte) (int, error) { return p.buf.Write(b) }

// themeMiddleware resolves the theme for every HTML page and adds it as a
// class on the page's <html> element.
func themeMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Method != http.MethodGet || !isPage(req.URL.Path) {
			return next(c)
		}

		res := c.Response()
		res.Header().Add("Accept-CH", theme.PreferenceHint)
		res.Header().Add(echo.HeaderVary, theme.PreferenceHint)
		res.Header().Add(echo.HeaderVary, "Cookie")

		orig := res.Writer
		page := &pageBuffer{ResponseWriter: orig, code: http.StatusOK}
		res.Writer = page
		err := next(c)
		res.Writer = orig
		if !res.Committed {
			return err
		}

		body := page.buf.Bytes()
		if page.code == http.StatusOK && strings.HasPrefix(res.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
			env := theme.NewHTTPEnvironment(orig, req)
			theme.NewSelector(env).Resolve()
			themed, applyErr := env.ApplyTo(body)
			if applyErr != nil {
				log.S().Errorf("apply theme: %v", applyErr)
			} else {
				body = themed
			}
			res.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(body)))
		}
		orig.WriteHeader(page.code)
		if _, werr := orig.Write(body); werr != nil {
			return werr
		}
		return err
	}
}

func isPage(p string) bool {
	if strings.HasPrefix(p, "/public/") {
		return false
	}
	ext := path.Ext(p)
	return ext == "" || ext == ".html"
}
