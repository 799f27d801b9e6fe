package content

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	lower      = cases.Lower(language.Und)
)

// Slugify turns a file name or title into the slug used in document paths.
// Accents are folded ("Café" → "cafe"), letters and digits of any script are
// kept, and every other run of characters becomes a single hyphen.
func Slugify(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	words := strings.FieldsFunc(lower.String(folded), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, "-")
}

// BuildURL returns the canonical URL of a page under base. Page URLs always
// end in "/": feed item links and trailing-slash sitemap locations rely on
// it, and the site root is base + "/".
func BuildURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u = u.JoinPath(segments...)
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		u.RawPath = ""
	}
	return u.String()
}

// cleanTags trims tags and drops the blank ones, keeping their order.
func cleanTags(tags []string) []string {
	return lo.FilterMap(tags, func(tag string, _ int) (string, bool) {
		tag = strings.TrimSpace(tag)
		return tag, tag != ""
	})
}
