package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/samber/lo"
)

// ErrUnknownFormat is returned for a feed type that cannot be written.
var ErrUnknownFormat = errors.New("unknown feed format")

// JSONFeedVersion is the JSON Feed version written by JSON1.
const JSONFeedVersion = "https://jsonfeed.org/version/1"

// Format is a feed serialization format.
type Format string

const (
	RSS2  Format = "rss2"
	Atom1 Format = "atom1"
	JSON1 Format = "json1"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case RSS2, Atom1, JSON1:
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// ContentType returns the media type of the format.
func (f Format) ContentType() string {
	switch f {
	case RSS2:
		return "application/rss+xml"
	case Atom1:
		return "application/atom+xml"
	case JSON1:
		return "application/feed+json"
	}
	return "application/octet-stream"
}

// Write serializes doc in the given format.
func Write(w io.Writer, doc *Document, format Format) error {
	f := doc.toFeed()
	switch format {
	case RSS2:
		rss := (&feeds.Rss{Feed: f}).RssFeed()
		rss.Ttl = doc.Options.TTL
		rss.Category = strings.Join(doc.Categories, ", ")
		for i, item := range rss.Items {
			item.Category = strings.Join(categoryNames(doc.Items[i]), ", ")
		}
		return feeds.WriteXML(rss, w)
	case Atom1:
		atom := (&feeds.Atom{Feed: f}).AtomFeed()
		atom.Category = strings.Join(doc.Categories, ", ")
		if len(doc.Contributors) > 0 {
			c := doc.Contributors[0]
			atom.Contributor = &feeds.AtomContributor{
				AtomPerson: feeds.AtomPerson{Name: c.Name, Email: c.Email, Uri: c.Link},
			}
		}
		for i, entry := range atom.Entries {
			entry.Category = strings.Join(categoryNames(doc.Items[i]), ", ")
		}
		return feeds.WriteXML(atom, w)
	case JSON1:
		jf := (&feeds.JSON{Feed: f}).JSONFeed()
		jf.Version = JSONFeedVersion
		for i, item := range jf.Items {
			item.Tags = categoryNames(doc.Items[i])
			item.Image = doc.Items[i].Image
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jf)
	}
	return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

func (d *Document) toFeed() *feeds.Feed {
	f := &feeds.Feed{
		Title:       d.Options.Title,
		Link:        &feeds.Link{Href: d.Options.Link},
		Description: d.Options.Description,
		Id:          d.Options.Link,
	}
	if d.Options.Image != "" {
		f.Image = &feeds.Image{Url: d.Options.Image, Title: d.Options.Title, Link: d.Options.Link}
	}
	// Items arrive newest first; stamping the newest date keeps output stable
	// between builds of the same content.
	if len(d.Items) > 0 {
		f.Created = d.Items[0].Date
		f.Updated = d.Items[0].Date
	}
	for _, item := range d.Items {
		fi := &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Id:          item.ID,
			Description: item.Description,
			Content:     item.Content,
			Created:     item.Date,
		}
		if item.Author.Name != "" {
			fi.Author = &feeds.Author{Name: item.Author.Name, Email: item.Author.Email}
		}
		if item.Image != "" {
			fi.Enclosure = &feeds.Enclosure{Url: item.Image, Length: "0", Type: imageType(item.Image)}
		}
		f.Items = append(f.Items, fi)
	}
	return f
}

func categoryNames(item Item) []string {
	return lo.Map(item.Category, func(c Category, _ int) string {
		return c.Name
	})
}

func imageType(url string) string {
	if t := mime.TypeByExtension(path.Ext(url)); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/png"
}
