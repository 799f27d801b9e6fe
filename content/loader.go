package content

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// frontMatter is the metadata block of a document.
type frontMatter struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	ImgURL      string   `yaml:"imgUrl"`
	Author      string   `yaml:"author"`
	Tags        []string `yaml:"tags"`
	CreatedAt   string   `yaml:"createdAt"`
	UpdatedAt   string   `yaml:"updatedAt"`
}

// Document is a parsed file on its way into the index.
type Document struct {
	Record

	// Text is the raw document text after the front matter.
	Text string
}

// InsertHook runs on every document right before it is indexed.
type InsertHook func(doc *Document)

// PlainTextBody exposes the text of Markdown documents as BodyPlainText.
func PlainTextBody(doc *Document) {
	if doc.Extension == ".md" {
		text := doc.Text
		doc.BodyPlainText = &text
	}
}

// Loader reads documents from a content directory.
type Loader struct {
	fs    afero.Fs
	root  string
	hooks []InsertHook
}

// NewLoader creates a Loader rooted at dir on fs. With no hooks the
// PlainTextBody hook is installed.
func NewLoader(fs afero.Fs, dir string, hooks ...InsertHook) *Loader {
	if len(hooks) == 0 {
		hooks = []InsertHook{PlainTextBody}
	}
	return &Loader{fs: fs, root: dir, hooks: hooks}
}

// Load walks the content directory and returns one record per Markdown or
// YAML document. Other files are skipped.
func (l *Loader) Load(ctx context.Context) ([]Record, error) {
	var records []Record
	sources := make(map[string]string)
	err := afero.Walk(l.fs, l.root, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		switch ext {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}

		doc, err := l.parse(name, ext, info)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		if prev, ok := sources[doc.Path]; ok {
			return fmt.Errorf("%s and %s: %s: %w", prev, name, doc.Path, ErrDuplicatePath)
		}
		sources[doc.Path] = name

		for _, hook := range l.hooks {
			hook(doc)
		}
		records = append(records, doc.Record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (l *Loader) parse(name, ext string, info os.FileInfo) (*Document, error) {
	data, err := afero.ReadFile(l.fs, name)
	if err != nil {
		return nil, err
	}

	var (
		fm   frontMatter
		text string
	)
	if ext == ".md" {
		body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
		if err != nil {
			return nil, err
		}
		text = string(body)
	} else if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(l.root, name)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)
	dir := path.Dir("/" + rel)
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))

	slug := fm.Slug
	if slug == "" {
		slug = Slugify(base)
	}
	if slug == "" {
		return nil, fmt.Errorf("%q yields an empty slug", base)
	}

	createdAt, err := parseDate(fm.CreatedAt, info.ModTime())
	if err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}
	updatedAt, err := parseDate(fm.UpdatedAt, info.ModTime())
	if err != nil {
		return nil, fmt.Errorf("updatedAt: %w", err)
	}

	return &Document{
		Record: Record{
			Slug:        slug,
			Title:       fm.Title,
			Description: fm.Description,
			ImgURL:      fm.ImgURL,
			Author:      fm.Author,
			Tags:        cleanTags(fm.Tags),
			CreatedAt:   createdAt,
			UpdatedAt:   updatedAt,
			Path:        path.Join(dir, slug),
			Dir:         dir,
			Extension:   ext,
			Collection:  strings.TrimPrefix(dir, "/"),
		},
		Text: text,
	}, nil
}

func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback.UTC(), nil
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
