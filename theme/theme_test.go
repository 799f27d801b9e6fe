package theme

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnv struct {
	cookies map[string]string
	dark    bool
	classes []string
	writes  int
}

func newFakeEnv(dark bool) *fakeEnv {
	return &fakeEnv{cookies: map[string]string{}, dark: dark}
}

func (f *fakeEnv) ReadCookie(name string) string { return f.cookies[name] }
func (f *fakeEnv) WriteCookie(name, value string) {
	f.cookies[name] = value
	f.writes++
}
func (f *fakeEnv) ApplyClass(class string) { f.classes = append(f.classes, class) }
func (f *fakeEnv) PrefersDark() bool      { return f.dark }

func TestResolveWithoutCookie(t *testing.T) {
	for _, tc := range []struct {
		dark bool
		want Theme
	}{
		{dark: true, want: Dark},
		{dark: false, want: Light},
	} {
		env := newFakeEnv(tc.dark)
		got := NewSelector(env).Resolve()
		assert.Equal(t, tc.want, got)
		assert.Equal(t, string(tc.want), env.cookies[CookieName])
		assert.Equal(t, []string{string(tc.want)}, env.classes)
	}
}

func TestResolveCookieWins(t *testing.T) {
	env := newFakeEnv(true)
	env.cookies[CookieName] = "light"

	assert.Equal(t, Light, NewSelector(env).Resolve())
	assert.Equal(t, 0, env.writes)
	assert.Equal(t, []string{"light"}, env.classes)
}

func TestResolveAppliesUnknownValue(t *testing.T) {
	env := newFakeEnv(false)
	env.cookies[CookieName] = "sepia"

	assert.Equal(t, Theme("sepia"), NewSelector(env).Resolve())
	assert.Equal(t, []string{"sepia"}, env.classes)
}

func TestClassesAccumulate(t *testing.T) {
	env := newFakeEnv(false)
	s := NewSelector(env)
	s.Resolve()

	env.cookies[CookieName] = "dark"
	_, handled := s.HandleEvent(ChangedMode)
	require.True(t, handled)

	assert.Equal(t, []string{"light", "dark"}, env.classes)
}

func TestHandleEventIgnoresOthers(t *testing.T) {
	env := newFakeEnv(false)
	_, handled := NewSelector(env).HandleEvent("resize")
	assert.False(t, handled)
	assert.Empty(t, env.classes)
}

func TestParseCookie(t *testing.T) {
	tests := []struct {
		header, name, want string
	}{
		{"theme=dark", "theme", "dark"},
		{"a=1; theme=light; b=2", "theme", "light"},
		{"a=1;   theme=dark", "theme", "dark"},
		{"mytheme=dark", "theme", ""},
		{"", "theme", ""},
		{"theme=%64ark", "theme", "dark"},
		{"theme=", "theme", ""},
		{"theme=dark; theme=light", "theme", "dark"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseCookie(tc.header, tc.name), tc.header)
	}
}

func TestHTTPEnvironment(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(PreferenceHint, `"dark"`)
	rec := httptest.NewRecorder()

	env := NewHTTPEnvironment(rec, req)
	got := NewSelector(env).Resolve()

	assert.Equal(t, Dark, got)
	assert.Equal(t, "theme=dark; Path=/", rec.Header().Get("Set-Cookie"))
	assert.Equal(t, "dark", env.ReadCookie(CookieName))
	assert.Equal(t, []string{"dark"}, env.Classes())
}

func TestHTTPEnvironmentReadsRequestCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "session=x; theme=light")
	req.Header.Set(PreferenceHint, "dark")
	rec := httptest.NewRecorder()

	env := NewHTTPEnvironment(rec, req)
	assert.Equal(t, Light, NewSelector(env).Resolve())
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestApplyTo(t *testing.T) {
	env := NewHTTPEnvironment(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	env.ApplyClass("light")
	env.ApplyClass("dark")

	out, err := env.ApplyTo([]byte(`<!DOCTYPE html><html class="js" lang="en"><head></head><body><p>hi</p></body></html>`))
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	root := doc.Find("html")
	assert.True(t, root.HasClass("js"))
	assert.True(t, root.HasClass("light"))
	assert.True(t, root.HasClass("dark"))
	class, _ := root.Attr("class")
	assert.Equal(t, "js light dark", class)
	assert.Contains(t, string(out), "<p>hi</p>")
}

func TestApplyToWithoutClassAttribute(t *testing.T) {
	env := NewHTTPEnvironment(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	env.ApplyClass("dark")

	out, err := env.ApplyTo([]byte(`<html><head></head><body></body></html>`))
	require.NoError(t, err)
	assert.Contains(t, string(out), `<html class="dark">`)
}
