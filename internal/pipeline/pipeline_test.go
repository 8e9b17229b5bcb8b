package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlayer/extraction-engine/internal/cache"
	"github.com/freightlayer/extraction-engine/internal/catalog"
	"github.com/freightlayer/extraction-engine/internal/config"
	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/schema"
)

// silentProvider answers every prompt with its fixed reply; it stands in
// for the AI and judge providers. Tests that want a provider absent pass
// nil to newTestEngine instead.
type silentProvider struct{ reply string }

func (p *silentProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64, deadline time.Duration) (string, error) {
	return p.reply, nil
}

func newTestEngine(cfg config.Config, ai, judgeProvider *silentProvider) *Engine {
	var aiP, judgeP interface {
		Generate(ctx context.Context, prompt string, maxTokens int, temperature float64, deadline time.Duration) (string, error)
	}
	if ai != nil {
		aiP = ai
	}
	if judgeProvider != nil {
		judgeP = judgeProvider
	}
	return New(catalog.New(), schema.New(), aiP, judgeP, cache.NewMemoryClient(), cfg, nil)
}

// TestRun_SubjectOnlyBookingExtractedViaRegex grounds scenario S1 at the
// orchestrator level: with AI and judge disabled, a subject-only booking
// number still surfaces in the final record via C3 alone.
func TestRun_SubjectOnlyBookingExtractedViaRegex(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Enabled = false
	cfg.Judge.Enabled = false
	e := newTestEngine(cfg, nil, nil)

	record, err := e.Run(context.Background(), model.Input{
		SourceRef: "msg-1",
		Subject:   "Booking Number: SHNB1234567",
		BodyText:  "Please see attached rate sheet for your review.",
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	rec, ok := record.Fields[model.KindBookingNumber]
	require.True(t, ok)
	assert.Equal(t, "SHNB1234567", rec.Value.Text)
	assert.Equal(t, model.StrategyRegexOnly, record.Metadata.Strategy)
	assert.False(t, record.Metadata.AICalled)
}

func TestRun_EmptyInputReturnsWarningRecordNoError(t *testing.T) {
	cfg := config.Default()
	e := newTestEngine(cfg, nil, nil)

	record, err := e.Run(context.Background(), model.Input{SourceRef: "msg-empty"})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, model.StrategyAIFallback, record.Metadata.Strategy)
	require.Len(t, record.Metadata.Issues, 1)
	assert.Equal(t, model.SeverityWarning, record.Metadata.Issues[0].Severity)
}

// TestRun_CacheHitSkipsReprocessing grounds §5's memoization contract:
// the second Run for identical (source_ref, versions, text) returns the
// same cached record without needing AI/judge to fire again.
func TestRun_CacheHitSkipsReprocessing(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Enabled = false
	cfg.Judge.Enabled = false
	cfg.Cache.Enabled = true
	e := newTestEngine(cfg, nil, nil)

	in := model.Input{
		SourceRef: "msg-cache",
		Subject:   "Booking Number: SHNB1234567",
		BodyText:  "thank you",
	}

	first, err := e.Run(context.Background(), in)
	require.NoError(t, err)

	second, err := e.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.Fields[model.KindBookingNumber].Value.Text, second.Fields[model.KindBookingNumber].Value.Text)
}

// TestRun_AIInvokedWhenCriticalFieldsMissing grounds decideAI rule (a) at
// the orchestrator boundary: a near-empty document with no critical
// fields triggers an AI call, and the AI-filled value survives into the
// final record.
func TestRun_AIInvokedWhenCriticalFieldsMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Judge.Enabled = false
	ai := &silentProvider{reply: `{"booking_number":"SHNB1234567"}`}
	e := newTestEngine(cfg, ai, nil)

	record, err := e.Run(context.Background(), model.Input{
		SourceRef: "msg-ai",
		BodyText:  "Please confirm SHNB1234567 whenever convenient.",
	})
	require.NoError(t, err)
	assert.True(t, record.Metadata.AICalled)
	rec, ok := record.Fields[model.KindBookingNumber]
	require.True(t, ok)
	assert.Equal(t, model.MethodAI, rec.Method)
	assert.Equal(t, model.StrategyRegexPlusAI, record.Metadata.Strategy)
}

// TestRun_DroppedCandidateRecordsInfoIssue grounds scenario S3 at the
// orchestrator level: a candidate that fails its validator is not
// emitted, and C9 surfaces the rejection as an info issue on the record.
func TestRun_DroppedCandidateRecordsInfoIssue(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Enabled = false
	cfg.Judge.Enabled = false
	e := newTestEngine(cfg, nil, nil)

	record, err := e.Run(context.Background(), model.Input{
		SourceRef: "msg-bad-check-digit",
		BodyText:  "Container Number: MSCU1234565 will be loaded Friday.",
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	_, ok := record.Fields[model.KindContainerNumber]
	assert.False(t, ok)

	var found bool
	for _, issue := range record.Metadata.Issues {
		if issue.Severity == model.SeverityInfo && issue.Field == model.KindContainerNumber {
			found = true
		}
	}
	assert.True(t, found, "expected an info issue recording the dropped candidate")
}

// TestRun_SchemaMismatchRecordsInfoIssue grounds §7 SchemaMismatch: an
// unrecognized document_type skips C5 and records the fact as an info
// issue rather than only logging it.
func TestRun_SchemaMismatchRecordsInfoIssue(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Enabled = false
	cfg.Judge.Enabled = false
	e := newTestEngine(cfg, nil, nil)

	record, err := e.Run(context.Background(), model.Input{
		SourceRef:    "msg-schema-mismatch",
		DocumentType: "warehouse_receipt",
		BodyText:     "Booking Number: SHNB1234567",
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	var found bool
	for _, issue := range record.Metadata.Issues {
		if issue.Severity == model.SeverityInfo {
			found = true
		}
	}
	assert.True(t, found, "expected an info issue recording the schema mismatch")
}
