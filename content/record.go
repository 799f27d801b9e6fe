// Package content indexes the site's Markdown and YAML documents into a
// SQLite store and exposes them through a small query API:
//
//	store.Query("blog").Only("path").SortBy("createdAt", content.Desc).Fetch(ctx)
package content

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrInvalidRecord is returned when a record lacks a required field.
	ErrInvalidRecord = errors.New("invalid content record")
	// ErrUnknownField is returned when a query names a field that does not exist.
	ErrUnknownField = errors.New("unknown content field")
	// ErrNotFound is returned when no record exists at the requested path.
	ErrNotFound = errors.New("content not found")
	// ErrDuplicatePath is returned when two documents map to the same path.
	ErrDuplicatePath = errors.New("duplicate content path")
)

// Record is a single indexed document. Records are owned by the store and
// are never mutated by consumers.
type Record struct {
	Slug        string
	Title       string
	Description string
	ImgURL      string
	Author      string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// BodyPlainText is the Markdown body of the document. It is nil for
	// documents that carry no body, such as YAML data files.
	BodyPlainText *string

	Path       string
	Dir        string
	Extension  string
	Collection string
}

// Validate checks that the fields every consumer relies on are present.
// All missing fields are reported at once.
func (r Record) Validate() error {
	var result *multierror.Error
	if r.Slug == "" {
		result = multierror.Append(result, fmt.Errorf("%w: missing slug", ErrInvalidRecord))
	}
	if r.Title == "" {
		result = multierror.Append(result, fmt.Errorf("%w: missing title", ErrInvalidRecord))
	}
	if r.CreatedAt.IsZero() {
		result = multierror.Append(result, fmt.Errorf("%w: missing createdAt", ErrInvalidRecord))
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("record %s: %w", r.Path, err)
	}
	return nil
}

// Body returns the Markdown body and whether the document has one.
func (r Record) Body() (string, bool) {
	if r.BodyPlainText == nil {
		return "", false
	}
	return *r.BodyPlainText, true
}
