// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes generated skill documents in a SQLite database
// so past runs can be listed and searched by name or summary text.
// See docs/ARCHITECTURE § Skill Catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper2skill/pkg/types"
)

const dbFile = "catalog.db"

// Record is one catalog entry: a skill document generated from a source.
type Record struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Type           string    `json:"type" yaml:"type"`
	SourceDocument string    `json:"source_document" yaml:"source_document"`
	OutputPath     string    `json:"output_path" yaml:"output_path"`
	Summary        string    `json:"summary" yaml:"summary"`
	ConceptCount   int       `json:"concept_count" yaml:"concept_count"`
	ToolCount      int       `json:"tool_count" yaml:"tool_count"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the skill catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at cfg.Dir/catalog.db.
// It creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS skills (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			type TEXT,
			source_document TEXT,
			output_path TEXT,
			summary TEXT,
			concept_count INTEGER,
			tool_count INTEGER,
			created_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skills_created_at ON skills(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='skills_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE skills_fts USING fts5(name, summary, content=skills, content_rowid=rowid)`,
			`CREATE TRIGGER skills_ai AFTER INSERT ON skills BEGIN
				INSERT INTO skills_fts(rowid, name, summary) VALUES (new.rowid, new.name, new.summary);
			END`,
			`CREATE TRIGGER skills_ad AFTER DELETE ON skills BEGIN
				INSERT INTO skills_fts(skills_fts, rowid, name, summary) VALUES('delete', old.rowid, old.name, old.summary);
			END`,
			`CREATE TRIGGER skills_au AFTER UPDATE ON skills BEGIN
				INSERT INTO skills_fts(skills_fts, rowid, name, summary) VALUES('delete', old.rowid, old.name, old.summary);
				INSERT INTO skills_fts(rowid, name, summary) VALUES (new.rowid, new.name, new.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save upserts a record. Records are keyed by ID so regenerating a skill
// from the same source replaces the old entry. A zero CreatedAt is filled
// with the current time; an empty ID is derived from the source document.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = RecordID(rec.SourceDocument)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO skills (id, name, type, source_document, output_path, summary, concept_count, tool_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, type=excluded.type,
			source_document=excluded.source_document, output_path=excluded.output_path,
			summary=excluded.summary, concept_count=excluded.concept_count,
			tool_count=excluded.tool_count, created_at=excluded.created_at`,
		rec.ID, rec.Name, rec.Type, rec.SourceDocument, rec.OutputPath,
		rec.Summary, rec.ConceptCount, rec.ToolCount,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving record %s: %w", rec.ID, err)
	}
	return nil
}

// List returns catalog entries, newest first. A maxResults of 0 uses the
// store default.
func (s *Store) List(ctx context.Context, maxResults int) ([]Record, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, source_document, output_path, summary, concept_count, tool_count, created_at
		 FROM skills ORDER BY created_at DESC LIMIT ?`, maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Search runs an FTS5 full-text query over skill names and summaries,
// ranked by relevance.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]Record, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT sk.id, sk.name, sk.type, sk.source_document, sk.output_path, sk.summary,
			sk.concept_count, sk.tool_count, sk.created_at
		 FROM skills_fts
		 JOIN skills sk ON sk.rowid = skills_fts.rowid
		 WHERE skills_fts MATCH ?
		 ORDER BY skills_fts.rank
		 LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			rec       Record
			createdAt string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Type, &rec.SourceDocument, &rec.OutputPath,
			&rec.Summary, &rec.ConceptCount, &rec.ToolCount, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecordID derives a stable catalog key from a source document path: the
// lowercased filename stem with spaces and underscores normalized to
// hyphens.
func RecordID(sourcePath string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	stem = strings.ToLower(stem)
	stem = strings.NewReplacer(" ", "-", "_", "-").Replace(stem)
	if stem == "" || stem == "." {
		return "untitled"
	}
	return stem
}
