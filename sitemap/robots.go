package sitemap

import (
	"fmt"
	"io"
	"strings"
)

// Robots is the content of a robots.txt file.
type Robots struct {
	UserAgent string
	Disallow  []string
	Sitemap   string
	Host      string
}

// WriteRobots renders r in robots.txt syntax.
func WriteRobots(w io.Writer, r Robots) error {
	var b strings.Builder
	userAgent := r.UserAgent
	if userAgent == "" {
		userAgent = "*"
	}
	fmt.Fprintf(&b, "User-agent: %s\n", userAgent)
	for _, d := range r.Disallow {
		fmt.Fprintf(&b, "Disallow: %s\n", d)
	}
	if r.Sitemap != "" {
		fmt.Fprintf(&b, "Sitemap: %s\n", r.Sitemap)
	}
	if r.Host != "" {
		fmt.Fprintf(&b, "Host: %s\n", r.Host)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
