// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a log of conversion runs in SQLite so past
// artifacts can be located without re-running the engine.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ocr-pdf/pkg/types"
)

const dbFile = "ocr-pdf.db"

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at dir/ocr-pdf.db, creating
// the schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL,
		backend TEXT NOT NULL,
		lang TEXT,
		pages TEXT,
		ocr INTEGER NOT NULL,
		markdown_path TEXT NOT NULL,
		text_path TEXT NOT NULL,
		pdf_path TEXT,
		pdf_available INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record appends a run to the log and returns its assigned ID.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (input, backend, lang, pages, ocr, markdown_path, text_path, pdf_path, pdf_available, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Input, string(rec.Backend), rec.Lang, rec.Pages, rec.OCR,
		rec.Artifacts.MarkdownPath, rec.Artifacts.TextPath, rec.Artifacts.PDFPath,
		rec.Artifacts.PDFAvailable, createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, backend, lang, pages, ocr, markdown_path, text_path, pdf_path, pdf_available, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var backendName, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Input, &backendName, &rec.Lang, &rec.Pages, &rec.OCR,
			&rec.Artifacts.MarkdownPath, &rec.Artifacts.TextPath, &rec.Artifacts.PDFPath,
			&rec.Artifacts.PDFAvailable, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.Backend = types.ConversionBackend(backendName)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	return out, nil
}

// ExportYAML writes up to limit runs to w as a YAML document, newest first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	runs, err := s.Recent(ctx, limit)
	if err != nil {
		return err
	}

	doc := struct {
		Runs []types.RunRecord `yaml:"runs"`
	}{Runs: runs}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return nil
}
