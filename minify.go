package folio

import (
	"github.com/tdewolff/minify/v2"
	mJson "github.com/tdewolff/minify/v2/json"
	mXml "github.com/tdewolff/minify/v2/xml"

	"github.com/elianvancutsem/folio/feed"
)

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("application/xml", mXml.Minify)
	m.AddFunc(feed.RSS2.ContentType(), mXml.Minify)
	m.AddFunc(feed.Atom1.ContentType(), mXml.Minify)
	m.AddFunc(feed.JSON1.ContentType(), mJson.Minify)
	return m
}
