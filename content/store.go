package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding the indexed content records.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema. The special path ":memory:" keeps
// the index in memory.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared between queries.
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS records (
    path TEXT PRIMARY KEY,
    dir TEXT NOT NULL,
    collection TEXT NOT NULL,
    slug TEXT NOT NULL,
    extension TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    img_url TEXT NOT NULL,
    author TEXT NOT NULL,
    tags TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    body_plain_text TEXT
);
CREATE INDEX IF NOT EXISTS records_dir ON records (dir);
`)
	return err
}

// Replace swaps the whole index for records in a single transaction.
func (s *Store) Replace(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.Path]; ok {
			return fmt.Errorf("index %s: %w", r.Path, ErrDuplicatePath)
		}
		seen[r.Path] = struct{}{}
		if err := insertRecord(ctx, tx, r); err != nil {
			return fmt.Errorf("index %s: %w", r.Path, err)
		}
	}
	return tx.Commit()
}

func insertRecord(ctx context.Context, tx *sql.Tx, r Record) error {
	tags, err := json.Marshal(r.Tags)
	if err != nil {
		return err
	}
	var body sql.NullString
	if text, ok := r.Body(); ok {
		body = sql.NullString{String: text, Valid: true}
	}

	ib := sqlbuilder.NewInsertBuilder()
	ib.InsertInto("records").
		Cols("path", "dir", "collection", "slug", "extension", "title", "description",
			"img_url", "author", "tags", "created_at", "updated_at", "body_plain_text").
		Values(r.Path, r.Dir, r.Collection, r.Slug, r.Extension, r.Title, r.Description,
			r.ImgURL, r.Author, string(tags), r.CreatedAt.UnixNano(), r.UpdatedAt.UnixNano(), body)
	query, args := ib.BuildWithFlavor(sqlbuilder.SQLite)
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// Query starts a query over the documents directly inside collection. The
// empty collection selects the documents at the content root.
func (s *Store) Query(collection string) *Query {
	return &Query{
		store: s,
		dir:   collectionDir(collection),
	}
}

// Get returns the record stored at path.
func (s *Store) Get(ctx context.Context, path string) (Record, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(columnsOf(allFields)...).From("records").Where(sb.Equal("path", path))
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Record{}, err
	}
	defer rows.Close()

	records, err := scanRecords(rows, allFields)
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return records[0], nil
}

// Collections returns the distinct, sorted collection names in the index.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("DISTINCT collection").From("records").OrderBy("collection").Asc()
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func scanRecords(rows *sql.Rows, fields []string) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			r         Record
			tags      string
			createdAt int64
			updatedAt int64
			body      sql.NullString
		)
		dest := make([]any, len(fields))
		for i, f := range fields {
			switch f {
			case "path":
				dest[i] = &r.Path
			case "dir":
				dest[i] = &r.Dir
			case "collection":
				dest[i] = &r.Collection
			case "slug":
				dest[i] = &r.Slug
			case "extension":
				dest[i] = &r.Extension
			case "title":
				dest[i] = &r.Title
			case "description":
				dest[i] = &r.Description
			case "imgUrl":
				dest[i] = &r.ImgURL
			case "author":
				dest[i] = &r.Author
			case "tags":
				dest[i] = &tags
			case "createdAt":
				dest[i] = &createdAt
			case "updatedAt":
				dest[i] = &updatedAt
			case "bodyPlainText":
				dest[i] = &body
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
				return nil, fmt.Errorf("decode tags of %s: %w", r.Path, err)
			}
		}
		if createdAt != 0 {
			r.CreatedAt = time.Unix(0, createdAt).UTC()
		}
		if updatedAt != 0 {
			r.UpdatedAt = time.Unix(0, updatedAt).UTC()
		}
		if body.Valid {
			text := body.String
			r.BodyPlainText = &text
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
