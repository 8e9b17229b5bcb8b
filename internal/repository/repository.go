// Package repository defines C10: the pure persistence contract the
// orchestrator consumes. Implementations live outside the core (§6);
// this package only holds the interface and the persisted-record shape
// every adapter must honor.
package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// PersistedField is one row of a persisted extraction: the identifiers
// §6 requires every adapter to store.
type PersistedField struct {
	SourceRef      string
	Kind           model.Kind
	Value          string
	CanonicalValue string
	Confidence     int
	Method         model.Method
	PatternID      string
	CatalogVersion int
	CreatedAt      time.Time
}

// Repository is C10's contract. The orchestrator never persists
// directly; callers own the choice of adapter (memory, sqlite,
// postgres, ...).
type Repository interface {
	// SaveEmailExtraction persists a record produced from an email input.
	SaveEmailExtraction(ctx context.Context, record *model.ExtractionRecord) error
	// SaveDocumentExtraction persists a record produced from a standalone
	// document (no email envelope).
	SaveDocumentExtraction(ctx context.Context, record *model.ExtractionRecord) error
	// SaveUnifiedExtraction persists a record that merges email and
	// document sources under one source_ref.
	SaveUnifiedExtraction(ctx context.Context, record *model.ExtractionRecord) error

	// FindBySourceRef returns every persisted field row for a source_ref.
	FindBySourceRef(ctx context.Context, sourceRef string) ([]PersistedField, error)
	// FindByIdentifier returns every persisted field row whose kind and
	// canonical value match (e.g. look up by booking_number value).
	FindByIdentifier(ctx context.Context, kind model.Kind, canonicalValue string) ([]PersistedField, error)
}

// Flatten converts an extraction record into the PersistedField rows
// every adapter stores, enforcing the (source_ref, kind, canonical_value)
// uniqueness §6 requires by deduplicating within the record itself.
func Flatten(record *model.ExtractionRecord, catalogVersion int, now time.Time) []PersistedField {
	seen := make(map[string]bool)
	var out []PersistedField
	add := func(kind model.Kind, rec *model.FieldRecord) {
		if rec == nil {
			return
		}
		canonical := canonicalValue(rec)
		key := string(kind) + "|" + canonical
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, PersistedField{
			SourceRef:      record.SourceRef,
			Kind:           kind,
			Value:          rec.RawSpan,
			CanonicalValue: canonical,
			Confidence:     rec.Confidence,
			Method:         rec.Method,
			PatternID:      rec.PatternID,
			CatalogVersion: catalogVersion,
			CreatedAt:      now,
		})
	}

	for kind, rec := range record.Fields {
		add(kind, rec)
	}
	for kind, recs := range record.MultiFields {
		for _, rec := range recs {
			add(kind, rec)
		}
	}
	for kind, rec := range record.Parties {
		add(kind, rec)
	}
	return out
}

func canonicalValue(rec *model.FieldRecord) string {
	switch {
	case rec.Value.HasDate:
		return rec.Value.Date.Format("2006-01-02")
	case rec.Value.Amount != nil:
		return rec.Value.Amount.Currency + " " + formatFloat(rec.Value.Amount.Value)
	case rec.Value.HasNumber:
		return formatFloat(rec.Value.Number)
	case rec.Value.Party != nil:
		return rec.Value.Party.Name
	default:
		return rec.Value.Text
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
