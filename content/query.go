package content

import (
	"context"
	"fmt"
	"path"
	"strings"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
)

// Direction is a sort direction for Query.SortBy.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// fieldColumns maps the public field names to their SQLite columns.
var fieldColumns = map[string]string{
	"path":          "path",
	"dir":           "dir",
	"collection":    "collection",
	"slug":          "slug",
	"extension":     "extension",
	"title":         "title",
	"description":   "description",
	"imgUrl":        "img_url",
	"author":        "author",
	"tags":          "tags",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"bodyPlainText": "body_plain_text",
}

var allFields = []string{
	"path", "dir", "collection", "slug", "extension", "title", "description",
	"imgUrl", "author", "tags", "createdAt", "updatedAt", "bodyPlainText",
}

var sortableFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"title":     true,
	"slug":      true,
	"path":      true,
}

type sortKey struct {
	field string
	dir   Direction
}

// Query is a chainable query over one collection. It is not safe for
// concurrent use; build one per fetch.
type Query struct {
	store  *Store
	dir    string
	fields []string
	sort   []sortKey
}

// Only restricts the fields populated on the returned records.
func (q *Query) Only(fields ...string) *Query {
	q.fields = append(q.fields, fields...)
	return q
}

// SortBy adds a sort key. Keys apply in the order they were added.
func (q *Query) SortBy(field string, dir Direction) *Query {
	q.sort = append(q.sort, sortKey{field: field, dir: dir})
	return q
}

// Fetch runs the query and returns every matching record.
func (q *Query) Fetch(ctx context.Context) ([]Record, error) {
	fields := allFields
	if len(q.fields) > 0 {
		fields = q.fields
	}
	for _, f := range fields {
		if _, ok := fieldColumns[f]; !ok {
			return nil, fmt.Errorf("only %q: %w", f, ErrUnknownField)
		}
	}

	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(columnsOf(fields)...).From("records").Where(sb.Equal("dir", q.dir))

	var order []string
	for _, k := range q.sort {
		if !sortableFields[k.field] {
			return nil, fmt.Errorf("sort by %q: %w", k.field, ErrUnknownField)
		}
		dir := "ASC"
		if k.dir == Desc {
			dir = "DESC"
		}
		order = append(order, fieldColumns[k.field]+" "+dir)
	}
	// Ties fall back to path so repeated builds produce identical output.
	order = append(order, "path ASC")
	sb.OrderBy(order...)

	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)
	rows, err := q.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.dir, err)
	}
	defer rows.Close()

	return scanRecords(rows, fields)
}

func columnsOf(fields []string) []string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = fieldColumns[f]
	}
	return cols
}

func collectionDir(collection string) string {
	collection = strings.Trim(collection, "/")
	if collection == "" {
		return "/"
	}
	return path.Join("/", collection)
}
