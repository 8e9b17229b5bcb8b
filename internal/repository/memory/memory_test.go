package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlayer/extraction-engine/internal/model"
)

func recordWithBooking(sourceRef, value string, confidence int) *model.ExtractionRecord {
	r := model.NewExtractionRecord(sourceRef)
	r.Fields[model.KindBookingNumber] = &model.FieldRecord{
		Kind: model.KindBookingNumber, Value: model.FieldValue{Text: value}, Confidence: confidence,
	}
	return r
}

func TestStore_SaveAndFindBySourceRef(t *testing.T) {
	s := New(1)
	ctx := context.Background()

	require.NoError(t, s.SaveEmailExtraction(ctx, recordWithBooking("msg-1", "BKG1234567", 90)))

	rows, err := s.FindBySourceRef(ctx, "msg-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BKG1234567", rows[0].CanonicalValue)
	assert.Equal(t, 1, rows[0].CatalogVersion)
}

func TestStore_FindByIdentifier(t *testing.T) {
	s := New(1)
	ctx := context.Background()
	require.NoError(t, s.SaveDocumentExtraction(ctx, recordWithBooking("msg-1", "BKG1234567", 90)))

	rows, err := s.FindByIdentifier(ctx, model.KindBookingNumber, "BKG1234567")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "msg-1", rows[0].SourceRef)
}

// TestStore_ReSaveDoesNotDuplicate grounds §6's uniqueness requirement:
// saving the same (source_ref, kind, canonical_value) twice must not
// produce duplicate rows.
func TestStore_ReSaveDoesNotDuplicate(t *testing.T) {
	s := New(1)
	ctx := context.Background()
	rec := recordWithBooking("msg-1", "BKG1234567", 90)

	require.NoError(t, s.SaveUnifiedExtraction(ctx, rec))
	require.NoError(t, s.SaveUnifiedExtraction(ctx, rec))

	rows, err := s.FindBySourceRef(ctx, "msg-1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStore_DistinctCanonicalValuesBothPersist(t *testing.T) {
	s := New(1)
	ctx := context.Background()

	require.NoError(t, s.SaveUnifiedExtraction(ctx, recordWithBooking("msg-1", "BKG1111111", 90)))
	require.NoError(t, s.SaveUnifiedExtraction(ctx, recordWithBooking("msg-1", "BKG2222222", 85)))

	rows, err := s.FindBySourceRef(ctx, "msg-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestStore_UnknownSourceRefReturnsEmpty(t *testing.T) {
	s := New(1)
	rows, err := s.FindBySourceRef(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
