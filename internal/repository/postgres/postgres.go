// Package postgres implements the Repository contract against
// PostgreSQL via lib/pq, grounded on the teacher's storage.DB interface
// and repository shape (libs/knowledge-engine/internal/storage/
// repositories.go), narrowed to the extraction engine's flat
// field-row model.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/repository"
)

// Schema is the DDL a caller should apply (e.g. via a migration tool)
// before using Store.
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
	created_at      TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (source_ref, kind, canonical_value)
);
CREATE INDEX IF NOT EXISTS idx_extraction_fields_identifier ON extraction_fields(kind, canonical_value);
`

// Store is a Repository backed by *sql.DB (driver "postgres").
type Store struct {
	db             *sql.DB
	catalogVersion int
}

// Open connects to dsn, applies connection pool settings, and runs
// Schema.
func Open(ctx context.Context, dsn string, maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration, catalogVersion int) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, model.WrapRepositoryFailure(fmt.Errorf("open postgres: %w", err))
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if connMaxLifetime > 0 {
		db.SetConnMaxLifetime(connMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, model.WrapRepositoryFailure(fmt.Errorf("ping postgres: %w", err))
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
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

// save upserts every flattened row, enforcing the (source_ref, kind,
// canonical_value) uniqueness §6 requires via ON CONFLICT DO NOTHING —
// idempotent re-saves of the same record are a no-op.
func (s *Store) save(ctx context.Context, record *model.ExtractionRecord) error {
	rows := repository.Flatten(record, s.catalogVersion, time.Now().UTC())
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.WrapRepositoryFailure(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO extraction_fields
			(source_ref, kind, value, canonical_value, confidence, method, pattern_id, catalog_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (source_ref, kind, canonical_value) DO NOTHING
	`)
	if err != nil {
		return model.WrapRepositoryFailure(err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.SourceRef, string(row.Kind), row.Value, row.CanonicalValue,
			row.Confidence, string(row.Method), row.PatternID, row.CatalogVersion, row.CreatedAt,
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
		FROM extraction_fields WHERE source_ref = $1
	`, sourceRef)
	if err != nil {
		return nil, model.WrapRepositoryFailure(err)
	}
	return scanFields(rows)
}

func (s *Store) FindByIdentifier(ctx context.Context, kind model.Kind, canonicalValue string) ([]repository.PersistedField, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_ref, kind, value, canonical_value, confidence, method, pattern_id, catalog_version, created_at
		FROM extraction_fields WHERE kind = $1 AND canonical_value = $2
	`, string(kind), canonicalValue)
	if err != nil {
		return nil, model.WrapRepositoryFailure(err)
	}
	return scanFields(rows)
}

func scanFields(rows *sql.Rows) ([]repository.PersistedField, error) {
	defer rows.Close()
	var out []repository.PersistedField
	for rows.Next() {
		var row repository.PersistedField
		var kind, method string
		if err := rows.Scan(
			&row.SourceRef, &kind, &row.Value, &row.CanonicalValue,
			&row.Confidence, &method, &row.PatternID, &row.CatalogVersion, &row.CreatedAt,
		); err != nil {
			return nil, model.WrapRepositoryFailure(err)
		}
		row.Kind = model.Kind(kind)
		row.Method = model.Method(method)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapRepositoryFailure(err)
	}
	return out, nil
}

var _ repository.Repository = (*Store)(nil)
