package theme

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PreferenceHint is the client hint carrying the system colour scheme.
const PreferenceHint = "Sec-CH-Prefers-Color-Scheme"

// HTTPEnvironment is an Environment backed by one HTTP exchange. Cookies
// written during the exchange are visible to later reads, and applied
// classes are collected for ApplyTo.
type HTTPEnvironment struct {
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
	classes []string
}

// NewHTTPEnvironment creates an environment for the request r answered by w.
func NewHTTPEnvironment(w http.ResponseWriter, r *http.Request) *HTTPEnvironment {
	return &HTTPEnvironment{w: w, r: r, written: make(map[string]string)}
}

// ReadCookie returns the cookie value, preferring one set on this response.
func (e *HTTPEnvironment) ReadCookie(name string) string {
	if v, ok := e.written[name]; ok {
		return v
	}
	return ParseCookie(strings.Join(e.r.Header.Values("Cookie"), "; "), name)
}

// WriteCookie sets a session cookie scoped to the whole site.
func (e *HTTPEnvironment) WriteCookie(name, value string) {
	http.SetCookie(e.w, &http.Cookie{Name: name, Value: value, Path: "/"})
	e.written[name] = value
}

// ApplyClass records class for the document root.
func (e *HTTPEnvironment) ApplyClass(class string) {
	e.classes = append(e.classes, class)
}

// PrefersDark reads the colour scheme client hint.
func (e *HTTPEnvironment) PrefersDark() bool {
	return strings.Trim(e.r.Header.Get(PreferenceHint), `" `) == string(Dark)
}

// Classes returns the classes applied so far, in order.
func (e *HTTPEnvironment) Classes() []string {
	return e.classes
}

// ApplyTo adds the applied classes to the <html> element of page.
func (e *HTTPEnvironment) ApplyTo(page []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	root := doc.Find("html")
	for _, class := range e.classes {
		root.AddClass(class)
	}
	// AddClass pads with a space when the attribute already had a value.
	if class, ok := root.Attr("class"); ok {
		root.SetAttr("class", strings.Join(strings.Fields(class), " "))
	}
	html, err := doc.Html()
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}
