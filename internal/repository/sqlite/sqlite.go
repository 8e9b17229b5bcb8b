// Package sqlite implements the Repository contract against a local
// SQLite database, grounded on the teacher's storage.DB interface and
// repository shape (libs/knowledge-engine/internal/storage/repositories.go),
// narrowed to the extraction engine's flat field-row model.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/repository"
)

// Schema is the DDL a caller should apply before using Store.
const Schema = `
CREATE TABLE IF NOT EXISTS extraction_fields (
	source_ref      TEXT NOT NULL,
	kind            TEXT NOT NULL,
	value           TEXT NOT NULL,
	canonical_value TEXT NOT NULL,
	confidence      INTEGER NOT NULL,
	method          TEXT NOT NULL,
	pattern_id      TEXT,
	catalog_version INTEGER NOT NULL,
	created_at      TEXT NOT NULL,
	PRIMARY KEY (source_ref, kind, canonical_value)
);
CREATE INDEX IF NOT EXISTS idx_extraction_fields_identifier ON extraction_fields(kind, canonical_value);
`

// Store is a Repository backed by *sql.DB (driver "sqlite3").
type Store struct {
	db             *sql.DB
	catalogVersion int
}

// Open opens path with the mattn/go-sqlite3 driver, applies Schema, and
// returns a ready Store.
func Open(path string, maxOpenConns, catalogVersion int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, model.WrapRepositoryFailure(fmt.Errorf("open sqlite: %w", err))
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, model.WrapRepositoryFailure(fmt.Errorf("apply schema: %w", err))
	}
	return &Store{db: db, catalogVersion: catalogVersion}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveEmailExtraction(ctx context.Context, record *model.ExtractionRecord) error {
	return s.save(ctx, record)
}

func (s *Store) SaveDocumentExtraction(ctx context.Context, record *model.ExtractionRecord) error {
	return s.save(ctx, record)
}

func (s *Store) SaveUnifiedExtraction(ctx context.Context, record *model.ExtractionRecord) error {
	return s.save(ctx, record)
}

func (s *Store) save(ctx context.Context, record *model.ExtractionRecord) error {
	rows := repository.Flatten(record, s.catalogVersion, nowUTC())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.WrapRepositoryFailure(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO extraction_fields
			(source_ref, kind, value, canonical_value, confidence, method, pattern_id, catalog_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return model.WrapRepositoryFailure(err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.SourceRef, string(row.Kind), row.Value, row.CanonicalValue,
			row.Confidence, string(row.Method), row.PatternID, row.CatalogVersion,
			row.CreatedAt.Format(sqliteTimeFormat),
		); err != nil {
			return model.WrapRepositoryFailure(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return model.WrapRepositoryFailure(err)
	}
	return nil
}

func (s *Store) FindBySourceRef(ctx context.Context, sourceRef string) ([]repository.PersistedField, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_ref, kind, value, canonical_value, confidence, method, pattern_id, catalog_version, created_at
		FROM extraction_fields WHERE source_ref = ?
	`, sourceRef)
	if err != nil {
		return nil, model.WrapRepositoryFailure(err)
	}
	return scanFields(rows)
}

func (s *Store) FindByIdentifier(ctx context.Context, kind model.Kind, canonicalValue string) ([]repository.PersistedField, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_ref, kind, value, canonical_value, confidence, method, pattern_id, catalog_version, created_at
		FROM extraction_fields WHERE kind = ? AND canonical_value = ?
	`, string(kind), canonicalValue)
	if err != nil {
		return nil, model.WrapRepositoryFailure(err)
	}
	return scanFields(rows)
}

const sqliteTimeFormat = "2006-01-02 15:04:05"

func scanFields(rows *sql.Rows) ([]repository.PersistedField, error) {
	defer rows.Close()
	var out []repository.PersistedField
	for rows.Next() {
		var row repository.PersistedField
		var kind, method, createdAt string
		if err := rows.Scan(
			&row.SourceRef, &kind, &row.Value, &row.CanonicalValue,
			&row.Confidence, &method, &row.PatternID, &row.CatalogVersion, &createdAt,
		); err != nil {
			return nil, model.WrapRepositoryFailure(err)
		}
		row.Kind = model.Kind(kind)
		row.Method = model.Method(method)
		if t, err := parseSQLiteTime(createdAt); err == nil {
			row.CreatedAt = t
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapRepositoryFailure(err)
	}
	return out, nil
}

var _ repository.Repository = (*Store)(nil)
