package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"hello-world", "hello-world"},
		{"Café au lait", "cafe-au-lait"},
		{"Crème Brûlée!", "creme-brulee"},
		{"  Nuxt.js 3 release  ", "nuxt-js-3-release"},
		{"日本語", "日本語"},
		{"!!!", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://www.elian.codes", []string{"blog", "hello"}, "https://www.elian.codes/blog/hello/"},
		{"https://www.elian.codes/", []string{"blog", "hello"}, "https://www.elian.codes/blog/hello/"},
		{"https://www.elian.codes", []string{"/blog/hello"}, "https://www.elian.codes/blog/hello/"},
		{"https://www.elian.codes", []string{"/"}, "https://www.elian.codes/"},
		{"https://www.elian.codes", nil, "https://www.elian.codes/"},
		{"https://www.elian.codes", []string{"blog", "café"}, "https://www.elian.codes/blog/caf%C3%A9/"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, BuildURL(tc.base, tc.segments...))
	}
}

func TestCleanTags(t *testing.T) {
	assert.Equal(t, []string{"Go", "Nuxt.js"}, cleanTags([]string{" Go ", "", "  ", "Nuxt.js"}))
	assert.Empty(t, cleanTags(nil))
}
