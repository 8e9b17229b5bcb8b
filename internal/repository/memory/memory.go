// Package memory provides an in-process Repository implementation,
// useful for tests and for callers that do not need durability.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/repository"
)

// Store is a thread-safe in-memory Repository.
type Store struct {
	mu             sync.RWMutex
	bySourceRef    map[string][]repository.PersistedField
	byIdentifier   map[string][]repository.PersistedField
	catalogVersion int
}

// New returns an empty Store. catalogVersion is recorded on every row
// the way §6 requires.
func New(catalogVersion int) *Store {
	return &Store{
		bySourceRef:    make(map[string][]repository.PersistedField),
		byIdentifier:   make(map[string][]repository.PersistedField),
		catalogVersion: catalogVersion,
	}
}

func (s *Store) SaveEmailExtraction(ctx context.Context, record *model.ExtractionRecord) error {
	return s.save(record)
}

func (s *Store) SaveDocumentExtraction(ctx context.Context, record *model.ExtractionRecord) error {
	return s.save(record)
}

func (s *Store) SaveUnifiedExtraction(ctx context.Context, record *model.ExtractionRecord) error {
	return s.save(record)
}

func (s *Store) save(record *model.ExtractionRecord) error {
	rows := repository.Flatten(record, s.catalogVersion, time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool)
	for _, row := range s.bySourceRef[record.SourceRef] {
		existing[string(row.Kind)+"|"+row.CanonicalValue] = true
	}
	for _, row := range rows {
		key := string(row.Kind) + "|" + row.CanonicalValue
		if existing[key] {
			continue
		}
		existing[key] = true
		s.bySourceRef[record.SourceRef] = append(s.bySourceRef[record.SourceRef], row)
		idKey := string(row.Kind) + "|" + row.CanonicalValue
		s.byIdentifier[idKey] = append(s.byIdentifier[idKey], row)
	}
	return nil
}

func (s *Store) FindBySourceRef(ctx context.Context, sourceRef string) ([]repository.PersistedField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.bySourceRef[sourceRef]
	out := make([]repository.PersistedField, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *Store) FindByIdentifier(ctx context.Context, kind model.Kind, canonicalValue string) ([]repository.PersistedField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.byIdentifier[string(kind)+"|"+canonicalValue]
	out := make([]repository.PersistedField, len(rows))
	copy(out, rows)
	return out, nil
}

var _ repository.Repository = (*Store)(nil)
