// Package theme resolves the dark/light colour scheme of a page from the
// persisted "theme" cookie, falling back to the system preference.
package theme

import (
	"net/url"
	"strings"
)

// Theme is a colour scheme. Dark and Light are the known values, but a
// stored cookie is applied verbatim whatever it holds.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

const (
	// CookieName is the cookie holding the chosen theme.
	CookieName = "theme"
	// ChangedMode is the event fired after the theme cookie was changed.
	ChangedMode = "changedMode"
)

// Environment is what the selector needs from the page it runs in.
type Environment interface {
	ReadCookie(name string) string
	WriteCookie(name, value string)
	// ApplyClass adds class to the document root element.
	ApplyClass(class string)
	// PrefersDark reports whether the system prefers a dark colour scheme.
	PrefersDark() bool
}

// Selector resolves and applies the theme of one document.
type Selector struct {
	env Environment
}

// NewSelector creates a Selector bound to env.
func NewSelector(env Environment) *Selector {
	return &Selector{env: env}
}

// Resolve reads the theme cookie. Without one, the system preference picks
// dark or light and the choice is persisted. The result is added as a class
// on the document root; previously applied classes are left in place.
func (s *Selector) Resolve() Theme {
	var t Theme
	switch value := s.env.ReadCookie(CookieName); {
	case value != "":
		t = Theme(value)
	case s.env.PrefersDark():
		t = Dark
		s.env.WriteCookie(CookieName, string(t))
	default:
		t = Light
		s.env.WriteCookie(CookieName, string(t))
	}
	s.env.ApplyClass(string(t))
	return t
}

// HandleEvent is the selector's event subscription: a ChangedMode event
// reruns Resolve from scratch. Any other event is ignored and reports false.
func (s *Selector) HandleEvent(name string) (Theme, bool) {
	if name != ChangedMode {
		return "", false
	}
	return s.Resolve(), true
}

// ParseCookie returns the value of cookie name in a Cookie header, or "" if
// absent. The header is URL-decoded first and each pair must start with
// exactly "name=" once leading spaces are dropped.
func ParseCookie(header, name string) string {
	decoded, err := url.PathUnescape(header)
	if err != nil {
		decoded = header
	}
	prefix := name + "="
	for _, part := range strings.Split(decoded, ";") {
		part = strings.TrimLeft(part, " ")
		if strings.HasPrefix(part, prefix) {
			return part[len(prefix):]
		}
	}
	return ""
}
