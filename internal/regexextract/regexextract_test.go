package regexextract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlayer/extraction-engine/internal/catalog"
	"github.com/freightlayer/extraction-engine/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
}

// TestExtract_SubjectOnlyBooking grounds the scenario where a booking
// number only appears in the subject line: it should be tagged
// regex_subject and receive the +5 in-subject confidence bonus.
func TestExtract_SubjectOnlyBooking(t *testing.T) {
	cat := catalog.New()
	subject := "Booking Number: SHNB1234567"
	body := "Please see attached rate sheet for your review."
	text := subject + "\n" + body

	result, _ := Extract(cat, Request{
		Text:         text,
		SubjectStart: 0,
		SubjectEnd:   len(subject),
		Now:          fixedNow(),
	})

	recs := result[model.KindBookingNumber]
	require.NotEmpty(t, recs)
	best := recs[0]
	assert.Equal(t, model.MethodRegexSubject, best.Method)
	assert.Equal(t, "SHNB1234567", best.Value.Text)
	assert.Equal(t, 97, best.Confidence)
}

// TestExtract_PhoneSignatureTrap grounds the scenario where a 10-digit
// phone number in a signature block must never be mistaken for a bare
// booking number: the pattern's own negative_context clears it before a
// value is ever produced.
func TestExtract_PhoneSignatureTrap(t *testing.T) {
	cat := catalog.New()
	text := "Thanks for your business.\n\nRegards,\nJane Doe\nTel: 5551234567"

	result, _ := Extract(cat, Request{
		Text: text,
		Now:  fixedNow(),
	})

	for _, rec := range result[model.KindBookingNumber] {
		assert.NotEqual(t, "booking-003-bare-with-neg", rec.PatternID,
			"the bare pattern must never fire next to a phone signature")
	}
}

// TestExtract_BadContainerCheckDigitDropped grounds the scenario where a
// container number matches ISO-6346 shape but fails its check digit: the
// candidate must be dropped entirely, not merely demoted.
func TestExtract_BadContainerCheckDigitDropped(t *testing.T) {
	cat := catalog.New()
	text := "Container Number: MSCU1234565 will be loaded Friday."

	result, _ := Extract(cat, Request{
		Text: text,
		Now:  fixedNow(),
	})

	assert.Empty(t, result[model.KindContainerNumber])
}

// TestExtract_ValidContainerCheckDigitSurvives is the positive twin of
// TestExtract_BadContainerCheckDigitDropped.
func TestExtract_ValidContainerCheckDigitSurvives(t *testing.T) {
	cat := catalog.New()
	text := "Container Number: MSCU1234566 will be loaded Friday."

	result, _ := Extract(cat, Request{
		Text: text,
		Now:  fixedNow(),
	})

	recs := result[model.KindContainerNumber]
	require.NotEmpty(t, recs)
	assert.Equal(t, "MSCU1234566", recs[0].Value.Text)
	assert.Equal(t, 95, recs[0].Confidence)
}

// TestExtract_DateOutsideYearWindowCapped grounds §3 invariant 3: a
// calendar date outside the plausibility window is kept but its
// confidence is capped rather than dropped.
func TestExtract_DateOutsideYearWindowCapped(t *testing.T) {
	cat := catalog.New()
	text := "ETD: 2019-01-15"

	result, _ := Extract(cat, Request{
		Text:       text,
		Now:        fixedNow(),
		YearWindow: YearWindow{MinOffset: 2, MaxOffset: 3},
	})

	recs := result[model.KindETD]
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, recs[0].Confidence, 60)
}

// TestExtract_DateWithinYearWindowUncapped is the positive twin.
func TestExtract_DateWithinYearWindowUncapped(t *testing.T) {
	cat := catalog.New()
	text := "ETD: 2026-08-01"

	result, _ := Extract(cat, Request{
		Text:       text,
		Now:        fixedNow(),
		YearWindow: YearWindow{MinOffset: 2, MaxOffset: 3},
	})

	recs := result[model.KindETD]
	require.NotEmpty(t, recs)
	assert.Equal(t, 85, recs[0].Confidence)
}

func TestExtract_NoCandidatesForAbsentKind(t *testing.T) {
	cat := catalog.New()
	result, _ := Extract(cat, Request{Text: "nothing of interest here", Now: fixedNow()})
	assert.Empty(t, result[model.KindBookingNumber])
}

func TestExtract_DedupesByCanonicalValue(t *testing.T) {
	cat := catalog.New()
	text := "Vessel: EVER GIVEN\nVessel Name: EVER GIVEN"

	result, _ := Extract(cat, Request{Text: text, Now: fixedNow()})
	recs := result[model.KindVesselName]
	seen := make(map[string]bool)
	for _, r := range recs {
		assert.False(t, seen[r.Value.Text], "canonical value %q must appear once", r.Value.Text)
		seen[r.Value.Text] = true
	}
}
