package schema

import (
	"strings"
	"time"

	"github.com/freightlayer/extraction-engine/internal/catalog"
	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/validate"
)

// Result is C5's output: ranked field candidates, resolved party blocks,
// and extracted table rows (§4.5).
type Result struct {
	Fields  map[model.Kind][]*model.FieldRecord
	Parties map[model.Kind]*model.FieldRecord
	Tables  map[string][]map[string]*model.FieldRecord
}

// valueSearchWindow bounds how far past a label match the engine looks
// for its value_patterns.
const valueSearchWindow = 200

// fallbackWindow is the 160-char fallback window of §4.5 step 2.
const fallbackWindow = 160

// YearWindow bounds date plausibility (§3 invariant 3), mirroring
// regexextract.YearWindow so C5 applies the same cap C3 does to a
// schema-labeled date field.
type YearWindow struct {
	MinOffset int
	MaxOffset int
}

// DefaultYearWindow matches §6's documented default.
var DefaultYearWindow = YearWindow{MinOffset: 2, MaxOffset: 3}

// Extract runs doc against text for the given carrier hint (empty string
// for no variation), producing ranked field candidates, party blocks, and
// table rows (§4.5 steps 1-6). now and yearWindow bound date plausibility
// (§3 invariant 3); a zero now uses time.Now() and a zero yearWindow uses
// DefaultYearWindow.
func Extract(doc *Document, carrierHint string, text string, now time.Time, yearWindow YearWindow) Result {
	if yearWindow == (YearWindow{}) {
		yearWindow = DefaultYearWindow
	}
	if now.IsZero() {
		now = time.Now()
	}

	fields := doc.fieldsForCarrier(carrierHint)
	regions := detectRegions(text, doc.Sections)
	declaredSection := declaringSections(doc.Sections)

	result := Result{
		Fields:  make(map[model.Kind][]*model.FieldRecord),
		Parties: make(map[model.Kind]*model.FieldRecord),
	}

	for _, f := range fields {
		if model.PartyKinds[f.Kind] {
			if rec := extractPartyField(f, text, regions, declaredSection); rec != nil {
				result.Parties[f.Kind] = rec
			}
			continue
		}
		recs := extractField(f, text, regions, declaredSection, now, yearWindow)
		if len(recs) > 0 {
			result.Fields[f.Kind] = append(result.Fields[f.Kind], recs...)
		}
	}

	result.Tables = extractTables(doc.Tables, text)
	return result
}

// declaringSections maps a field name to the section that declares it,
// if any (§4.5 step 2, "the section containing the field").
func declaringSections(sections []Section) map[string]*Section {
	out := make(map[string]*Section)
	for i := range sections {
		s := &sections[i]
		for _, name := range s.FieldsInSection {
			out[name] = s
		}
	}
	return out
}

func extractField(f Field, text string, regions []region, declared map[string]*Section, now time.Time, yearWindow YearWindow) []*model.FieldRecord {
	builder, ok := catalog.Builders[f.ValidatorID]
	if !ok {
		builder = catalog.Builders["free_text"]
	}

	var out []*model.FieldRecord
	for _, labelPattern := range f.LabelPatterns {
		for _, loc := range labelPattern.FindAllStringSubmatchIndex(text, -1) {
			labelStart, labelEnd := loc[0], loc[1]

			outsideSection := false
			if sec, hasDeclared := declared[f.Name]; hasDeclared {
				r := regionFor(regions, labelStart)
				if r == nil || r.section != sec {
					outsideSection = true
				}
			}

			var raw string
			var valueStart int
			var fallback, found bool
			if len(loc) >= 4 && loc[2] >= 0 {
				// The label pattern itself captures the value inline
				// (e.g. a carrier variation where the value precedes its
				// own label, as in "VESSEL / VOYAGE Vessel/Voyage:").
				raw, valueStart, fallback, found = text[loc[2]:loc[3]], loc[2], false, true
			} else {
				raw, valueStart, fallback, found = findValue(f, text, labelEnd)
			}
			if !found {
				continue
			}
			value, valid, weak := builder(raw)
			if !valid {
				continue
			}
			if model.DateKinds[f.Kind] && value.HasDate {
				if !validate.InYearWindow(value.Date, now, yearWindow.MinOffset, yearWindow.MaxOffset) {
					weak = true
				}
			}

			confidence := 90
			if outsideSection {
				confidence -= 10
			}
			if fallback {
				confidence -= 15
			}
			if weak {
				confidence -= 10
			}
			if model.DateKinds[f.Kind] && weak {
				confidence = min(confidence, validate.DateConfidenceCap)
			}
			confidence = clampConfidence(confidence)

			out = append(out, &model.FieldRecord{
				Kind:       f.Kind,
				Value:      value,
				RawSpan:    raw,
				Confidence: confidence,
				Method:     model.MethodSchema,
				PatternID:  "schema:" + f.Name,
				SpanStart:  valueStart,
			})
		}
	}
	return out
}

// findValue looks for f's value immediately after a label match ending
// at labelEnd: first via f.ValuePatterns within a search window, then by
// falling back to the next non-empty tokens up to 160 chars, stopping at
// the next known label (§4.5 step 2).
func findValue(f Field, text string, labelEnd int) (raw string, start int, fallback bool, found bool) {
	windowEnd := labelEnd + valueSearchWindow
	if windowEnd > len(text) {
		windowEnd = len(text)
	}
	window := text[labelEnd:windowEnd]

	for _, vp := range f.ValuePatterns {
		loc := vp.FindStringSubmatchIndex(window)
		if loc == nil {
			continue
		}
		capStart, capEnd := loc[0], loc[1]
		if len(loc) >= 4 && loc[2] >= 0 {
			capStart, capEnd = loc[2], loc[3]
		}
		return window[capStart:capEnd], labelEnd + capStart, false, true
	}

	fbEnd := labelEnd + fallbackWindow
	if fbEnd > len(text) {
		fbEnd = len(text)
	}
	fbWindow := text[labelEnd:fbEnd]
	trimmed := strings.TrimLeft(fbWindow, " \t:#-")
	skipped := len(fbWindow) - len(trimmed)
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return "", 0, false, false
	}
	offset := labelEnd + skipped
	return trimmed, offset, true, true
}

func extractPartyField(f Field, text string, regions []region, declared map[string]*Section) *model.FieldRecord {
	for _, labelPattern := range f.LabelPatterns {
		loc := labelPattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		labelStart, labelEnd := loc[0], loc[1]
		party, end := parsePartyBlock(text, labelEnd)
		if party == nil {
			continue
		}

		outsideSection := false
		if sec, hasDeclared := declared[f.Name]; hasDeclared {
			r := regionFor(regions, labelStart)
			if r == nil || r.section != sec {
				outsideSection = true
			}
		}

		confidence := 85
		if outsideSection {
			confidence -= 10
		}
		confidence = clampConfidence(confidence)

		return &model.FieldRecord{
			Kind:       f.Kind,
			Value:      model.FieldValue{Party: party},
			RawSpan:    strings.TrimSpace(text[labelEnd:end]),
			Confidence: confidence,
			Method:     model.MethodSchema,
			PatternID:  "schema:" + f.Name,
			SpanStart:  labelEnd,
		}
	}
	return nil
}

func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
