// Package regexextract implements C3: the deterministic regex extractor.
// It applies the pattern catalog (C1) and field validators (C2) to raw
// text and returns ranked candidates per field with confidence and
// provenance. It never raises; a kind with no candidates is simply
// absent from the output (§4.3).
package regexextract

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/freightlayer/extraction-engine/internal/catalog"
	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/validate"
)

// YearWindow bounds date plausibility (§3 invariant 3).
type YearWindow struct {
	MinOffset int
	MaxOffset int
}

// DefaultYearWindow matches §6's documented default.
var DefaultYearWindow = YearWindow{MinOffset: 2, MaxOffset: 3}

// Request is C3's input contract (§4.3).
type Request struct {
	Text         string
	SubjectStart int
	SubjectEnd   int
	CarrierHint  string
	Now          time.Time // zero value means use time.Now()
	YearWindow   YearWindow
}

// negativeContextWindow is how many characters before a match start the
// extractor scans for a negative_context/exclusion hit (§4.3).
const negativeContextWindow = 40

// Extract runs the catalog against req.Text and returns ranked candidates
// per kind, highest confidence first, deduplicated by canonical form,
// plus an info Issue (§7 PatternInvariantViolation) for every candidate a
// catalog entry produced that its own validator then rejected.
func Extract(cat *catalog.Catalog, req Request) (map[model.Kind][]*model.FieldRecord, []model.Issue) {
	if req.YearWindow == (YearWindow{}) {
		req.YearWindow = DefaultYearWindow
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := make(map[model.Kind][]*model.FieldRecord)
	var issues []model.Issue
	for _, kind := range cat.Kinds() {
		var candidates []*model.FieldRecord
		for _, entry := range cat.Entries(kind) {
			if !entry.AppliesToCarrier(req.CarrierHint) {
				continue
			}
			recs, entryIssues := extractEntry(entry, req, now)
			candidates = append(candidates, recs...)
			issues = append(issues, entryIssues...)
		}
		if len(candidates) == 0 {
			continue
		}
		out[kind] = dedupeByCanonical(candidates)
	}
	return out, issues
}

func extractEntry(entry catalog.Entry, req Request, now time.Time) ([]*model.FieldRecord, []model.Issue) {
	builder, ok := catalog.Builders[entry.BuilderID]
	if !ok {
		return nil, nil
	}

	locs := entry.Regex.FindAllStringSubmatchIndex(req.Text, -1)
	var out []*model.FieldRecord
	var issues []model.Issue

	for _, loc := range locs {
		matchStart, matchEnd := loc[0], loc[1]
		raw := req.Text[matchStart:matchEnd]
		capturedStart, capturedEnd := matchStart, matchEnd
		if len(loc) >= 4 && loc[2] >= 0 {
			capturedStart, capturedEnd = loc[2], loc[3]
		}
		captured := req.Text[capturedStart:capturedEnd]

		hardAnchorMissing := entry.NegativeContext != nil && matchesNegativeContext(entry, req.Text, matchStart)

		value, valid, weak := builder(captured)
		if !valid {
			issues = append(issues, model.Issue{
				Severity:    model.SeverityInfo,
				Field:       entry.Kind,
				Description: fmt.Sprintf("candidate %q for pattern %s failed validation and was dropped", captured, entry.PatternID),
			})
			continue
		}

		// A bare numeric/alphanumeric pattern with no label of its own must
		// never fire without its negative_context clearing (§4.1): treat a
		// hit as a hard drop for such entries, and as a soft -20 penalty for
		// every other (already-labeled) entry (§4.3).
		isBareAnchorless := isBarePattern(entry.PatternID)
		if hardAnchorMissing && isBareAnchorless {
			continue
		}

		if model.DateKinds[entry.Kind] && value.HasDate {
			if !validate.InYearWindow(value.Date, now, req.YearWindow.MinOffset, req.YearWindow.MaxOffset) {
				weak = true
			}
		}

		confidence := entry.ConfidenceWeight
		inSubject := matchStart >= req.SubjectStart && matchEnd <= req.SubjectEnd && req.SubjectEnd > req.SubjectStart
		if inSubject {
			confidence += 5
		}
		if weak {
			confidence -= 10
		}
		if hardAnchorMissing && !isBareAnchorless {
			confidence -= 20
		}
		if model.DateKinds[entry.Kind] && weak {
			confidence = min(confidence, validate.DateConfidenceCap)
		}
		confidence = clamp(confidence, 0, 100)

		method := model.MethodRegex
		if inSubject {
			method = model.MethodRegexSubject
		}

		out = append(out, &model.FieldRecord{
			Kind:       entry.Kind,
			Value:      value,
			RawSpan:    raw,
			Confidence: confidence,
			Method:     method,
			PatternID:  entry.PatternID,
			SpanStart:  matchStart,
		})
	}
	return out, issues
}

func isBarePattern(patternID string) bool {
	for i := 0; i+4 <= len(patternID); i++ {
		if patternID[i:i+4] == "bare" {
			return true
		}
	}
	return false
}

func matchesNegativeContext(entry catalog.Entry, text string, matchStart int) bool {
	windowStart := matchStart - negativeContextWindow
	if windowStart < 0 {
		windowStart = 0
	}
	window := text[windowStart:matchStart]
	return entry.NegativeContext.MatchString(window)
}

// dedupeByCanonical keeps, for each distinct canonical value, the
// candidate with the highest confidence; ties broken by method preference
// then earliest span position (§3 invariant 4), and returns the result
// sorted by confidence descending.
func dedupeByCanonical(candidates []*model.FieldRecord) []*model.FieldRecord {
	best := make(map[string]*model.FieldRecord)
	for _, c := range candidates {
		key := canonicalKey(c)
		existing, found := best[key]
		if !found || isBetter(c, existing) {
			best[key] = c
		}
	}
	out := make([]*model.FieldRecord, 0, len(best))
	for _, v := range best {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].SpanStart < out[j].SpanStart
	})
	return out
}

// isBetter reports whether a should replace b as the kept candidate for
// the same canonical value (§3 invariant 4).
func isBetter(a, b *model.FieldRecord) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.Method != b.Method {
		return model.PreferredMethod(a.Method, b.Method)
	}
	return a.SpanStart < b.SpanStart
}

func canonicalKey(f *model.FieldRecord) string {
	switch {
	case f.Value.HasDate:
		return string(f.Kind) + "|" + f.Value.Date.Format("2006-01-02")
	case f.Value.Amount != nil:
		return string(f.Kind) + "|" + f.Value.Amount.Currency + "|" + strconv.FormatFloat(f.Value.Amount.Value, 'f', 2, 64)
	case f.Value.HasNumber:
		return string(f.Kind) + "|" + strconv.FormatFloat(f.Value.Number, 'f', 3, 64)
	default:
		return string(f.Kind) + "|" + f.Value.Text
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
