package aifill

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlayer/extraction-engine/internal/model"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64, deadline time.Duration) (string, error) {
	return f.reply, f.err
}

func TestFill_NilProviderReturnsEmpty(t *testing.T) {
	out := Fill(context.Background(), nil, Request{Gaps: []model.Kind{model.KindBookingNumber}})
	assert.Empty(t, out)
}

func TestFill_NoGapsReturnsEmpty(t *testing.T) {
	out := Fill(context.Background(), &fakeProvider{reply: `{"booking_number":"BKG1234567"}`}, Request{})
	assert.Empty(t, out)
}

func TestFill_ValidReplySurvivesWithBaseConfidence(t *testing.T) {
	p := &fakeProvider{reply: `{"booking_number":"BKG1234567"}`}
	out := Fill(context.Background(), p, Request{
		Text: "Please confirm booking BKG1234567 for next week.",
		Gaps: []model.Kind{model.KindBookingNumber},
	})

	rec, ok := out[model.KindBookingNumber]
	require.True(t, ok)
	assert.Equal(t, "BKG1234567", rec.Value.Text)
	assert.Equal(t, baseConfidence, rec.Confidence)
	assert.Equal(t, model.MethodAI, rec.Method)
}

// TestFill_CaseInsensitiveMatchIsPenalized grounds §4.6's presence check:
// a value that only matches after case-folding takes the penalty instead
// of being treated as verbatim.
func TestFill_CaseInsensitiveMatchIsPenalized(t *testing.T) {
	p := &fakeProvider{reply: `{"booking_number":"BKG1234567"}`}
	out := Fill(context.Background(), p, Request{
		Text: "please confirm booking bkg1234567 for next week.",
		Gaps: []model.Kind{model.KindBookingNumber},
	})

	rec, ok := out[model.KindBookingNumber]
	require.True(t, ok)
	assert.Equal(t, baseConfidence-caseInsensitivePenalty, rec.Confidence)
}

// TestFill_FabricatedValueIsDropped grounds the no-fabrication invariant:
// a value absent from the source text entirely, even after normalizing,
// must never be emitted.
func TestFill_FabricatedValueIsDropped(t *testing.T) {
	p := &fakeProvider{reply: `{"booking_number":"BKG9999999"}`}
	out := Fill(context.Background(), p, Request{
		Text: "Please confirm booking BKG1234567 for next week.",
		Gaps: []model.Kind{model.KindBookingNumber},
	})

	_, ok := out[model.KindBookingNumber]
	assert.False(t, ok)
}

func TestFill_NonJSONReplyReturnsEmpty(t *testing.T) {
	p := &fakeProvider{reply: "I could not find this value."}
	out := Fill(context.Background(), p, Request{
		Text: "some text",
		Gaps: []model.Kind{model.KindBookingNumber},
	})
	assert.Empty(t, out)
}

func TestFill_ProviderErrorReturnsEmpty(t *testing.T) {
	p := &fakeProvider{err: assert.AnError}
	out := Fill(context.Background(), p, Request{
		Text: "some text",
		Gaps: []model.Kind{model.KindBookingNumber},
	})
	assert.Empty(t, out)
}

func TestFill_NullOrNotFoundValueIsDropped(t *testing.T) {
	p := &fakeProvider{reply: `{"booking_number":"not found"}`}
	out := Fill(context.Background(), p, Request{
		Text: "some text",
		Gaps: []model.Kind{model.KindBookingNumber},
	})
	_, ok := out[model.KindBookingNumber]
	assert.False(t, ok)
}

// TestFill_PartyTokenOverlapSurvives grounds the relaxed party rule:
// sub-fields survive on token overlap with the source, not exact match.
func TestFill_PartyTokenOverlapSurvives(t *testing.T) {
	p := &fakeProvider{reply: `{"shipper":{"name":"Acme Trading Co","city":"Los Angeles","country":"United States"}}`}
	out := Fill(context.Background(), p, Request{
		Text: "Shipper: Acme Trading Co, 123 Harbor Blvd, Los Angeles, United States",
		Gaps: []model.Kind{model.KindShipper},
	})

	rec, ok := out[model.KindShipper]
	require.True(t, ok)
	require.NotNil(t, rec.Value.Party)
	assert.Equal(t, "Acme Trading Co", rec.Value.Party.Name)
}

// TestFill_DateOutsideYearWindowCapped grounds §3 invariant 3 / §4.6 for
// the AI path: an AI-returned date outside the plausibility window is
// kept but capped, not emitted at the base confidence.
func TestFill_DateOutsideYearWindowCapped(t *testing.T) {
	p := &fakeProvider{reply: `{"etd":"2019-01-15"}`}
	out := Fill(context.Background(), p, Request{
		Text:       "ETD: 2019-01-15",
		Gaps:       []model.Kind{model.KindETD},
		Now:        time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		YearWindow: YearWindow{MinOffset: 2, MaxOffset: 3},
	})

	rec, ok := out[model.KindETD]
	require.True(t, ok)
	assert.LessOrEqual(t, rec.Confidence, 60)
}

// TestFill_DateWithinYearWindowUncapped is the positive twin.
func TestFill_DateWithinYearWindowUncapped(t *testing.T) {
	p := &fakeProvider{reply: `{"etd":"2026-08-01"}`}
	out := Fill(context.Background(), p, Request{
		Text:       "ETD: 2026-08-01",
		Gaps:       []model.Kind{model.KindETD},
		Now:        time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		YearWindow: YearWindow{MinOffset: 2, MaxOffset: 3},
	})

	rec, ok := out[model.KindETD]
	require.True(t, ok)
	assert.Equal(t, baseConfidence, rec.Confidence)
}

func TestFill_PartyWithNoSourceOverlapIsDropped(t *testing.T) {
	p := &fakeProvider{reply: `{"shipper":{"name":"Totally Unrelated Entity","city":"Nowhere"}}`}
	out := Fill(context.Background(), p, Request{
		Text: "Shipper: Acme Trading Co, Los Angeles, United States",
		Gaps: []model.Kind{model.KindShipper},
	})
	_, ok := out[model.KindShipper]
	assert.False(t, ok)
}
