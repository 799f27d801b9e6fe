package folio

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/elianvancutsem/folio/markdown"
)

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// NotFoundPage is rendered for unknown paths.
func NotFoundPage() templ.Component {
	return statusPage(http.StatusNotFound, "This page could not be found. Try the [home page](/) or the [blog feed](/blog.xml).")
}

// ServerErrorPage is rendered for 5xx errors.
func ServerErrorPage() templ.Component {
	return statusPage(http.StatusInternalServerError, "Something went wrong on our side. Please try again later.")
}

// statusPage wraps a Markdown message in a minimal HTML shell.
func statusPage(code int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(fmt.Sprintf("%d %s", code, http.StatusText(code)))
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="/public/theme.js" defer></script>
</head>
<body>
<main>
<h1>%s</h1>
`, title, title)
		if err != nil {
			return err
		}
		if err := markdown.Markdown(message).Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
