package sitemap

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/elianvancutsem/folio/content"
)

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc string `xml:"loc"`
}

// Write renders routes as a sitemap rooted at hostname. With trailingSlash
// every location ends in "/".
func Write(w io.Writer, hostname string, routes []string, trailingSlash bool) error {
	urls := make([]url, 0, len(routes))
	for _, route := range routes {
		urls = append(urls, url{Loc: location(hostname, route, trailingSlash)})
	}
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func location(hostname, route string, trailingSlash bool) string {
	if trailingSlash {
		return content.BuildURL(hostname, route)
	}
	return strings.TrimRight(hostname, "/") + "/" + strings.TrimLeft(route, "/")
}
