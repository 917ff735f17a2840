package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

// Document is the durable copy of one collection.  Read returns nil
// and no error when nothing has been written yet.  Write replaces the
// whole document.
type Document interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, body []byte) error
}

// FileDocument keeps a collection in a JSON file.  Writes go to a
// temporary file in the same directory which is then renamed over the
// target, so readers never observe a half-written document.
type FileDocument struct {
	Path string
}

// NewFileDocument returns a document stored at dir/name.json.
func NewFileDocument(dir, name string) *FileDocument {
	return &FileDocument{Path: filepath.Join(dir, name+".json")}
}

func (d *FileDocument) Read(_ context.Context) ([]byte, error) {
	body, err := os.ReadFile(d.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return body, err
}

func (d *FileDocument) Write(_ context.Context, body []byte) error {
	dir := filepath.Dir(d.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, d.Path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	committed = true
	return nil
}

// SQLDocument keeps a collection as a single row of the documents
// table, keyed by name.  Each write upserts the whole body.
type SQLDocument struct {
	db   *sqlx.DB
	name string
}

// NewSQLDocument returns the document called name stored in db.
func NewSQLDocument(db *sqlx.DB, name string) *SQLDocument {
	return &SQLDocument{db: db, name: name}
}

// EnsureSchema creates the documents table if it does not exist yet.
func (d *SQLDocument) EnsureSchema(ctx context.Context) error {
	var q string
	switch d.db.DriverName() {
	case "postgres":
		q = `CREATE TABLE IF NOT EXISTS documents (
			name VARCHAR(64) PRIMARY KEY,
			body TEXT NOT NULL
		)`
	default:
		q = `CREATE TABLE IF NOT EXISTS documents (
			name VARCHAR(64) PRIMARY KEY,
			body LONGTEXT NOT NULL
		) CHARACTER SET utf8mb4`
	}
	_, err := d.db.ExecContext(ctx, q)
	return err
}

func (d *SQLDocument) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := d.db.GetContext(ctx, &body, d.db.Rebind("SELECT body FROM documents WHERE name = ?"), d.name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (d *SQLDocument) Write(ctx context.Context, body []byte) error {
	var q string
	switch d.db.DriverName() {
	case "postgres":
		q = `INSERT INTO documents (name, body) VALUES ($1, $2)
		     ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body`
	default:
		q = `INSERT INTO documents (name, body) VALUES (?, ?)
		     ON DUPLICATE KEY UPDATE body = VALUES(body)`
	}
	_, err := d.db.ExecContext(ctx, q, d.name, string(body))
	return err
}
