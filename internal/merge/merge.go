// Package merge implements C7: the confidence merger. It combines C3's
// regex candidates, C5's schema candidates, and (once C9 decides it's
// needed) C6's AI-filled candidates into the single winning field set
// (§3 invariant 4, §4.7).
package merge

import (
	"sort"
	"strconv"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// Inputs bundles the per-component candidate sets C7 merges. A nil map
// is treated as "this component did not run" (§4.7).
type Inputs struct {
	Regex   map[model.Kind][]*model.FieldRecord
	Schema  map[model.Kind][]*model.FieldRecord
	AI      map[model.Kind]*model.FieldRecord
	Parties map[model.Kind][]*model.FieldRecord // schema + ai party candidates, combined by caller
}

// Output is C7's result: one winner per single-valued kind, the full
// deduplicated set per multi-valued kind, and one winner per party kind.
type Output struct {
	Fields      map[model.Kind]*model.FieldRecord
	MultiFields map[model.Kind][]*model.FieldRecord
	Parties     map[model.Kind]*model.FieldRecord
}

// Merge ranks every candidate across all components by confidence, then
// method preference (schema > regex_subject > regex > ai), then earliest
// span (§3 invariant 4). Multi-valued kinds keep the full canonical-form
// union instead of a single winner (§3 invariant 5) with no cap on the
// number of distinct values kept (resolved Open Question, see DESIGN.md).
func Merge(in Inputs) Output {
	out := Output{
		Fields:      make(map[model.Kind]*model.FieldRecord),
		MultiFields: make(map[model.Kind][]*model.FieldRecord),
		Parties:     make(map[model.Kind]*model.FieldRecord),
	}

	byKind := make(map[model.Kind][]*model.FieldRecord)
	collect(byKind, in.Regex)
	collect(byKind, in.Schema)
	if in.AI != nil {
		for k, rec := range in.AI {
			byKind[k] = append(byKind[k], rec)
		}
	}

	for kind, candidates := range byKind {
		deduped := dedupeByCanonical(candidates)
		if model.MultiValuedKinds[kind] {
			out.MultiFields[kind] = deduped
			continue
		}
		if len(deduped) > 0 {
			out.Fields[kind] = deduped[0]
		}
	}

	for kind, candidates := range in.Parties {
		best := bestParty(candidates)
		if best != nil {
			out.Parties[kind] = best
		}
	}
	return out
}

func collect(dst map[model.Kind][]*model.FieldRecord, src map[model.Kind][]*model.FieldRecord) {
	for k, recs := range src {
		dst[k] = append(dst[k], recs...)
	}
}

// bestParty picks the highest-ranked party candidate the same way a
// single-valued field winner is chosen; party kinds are never
// multi-valued (§3).
func bestParty(candidates []*model.FieldRecord) *model.FieldRecord {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if isBetter(c, best) {
			best = c
		}
	}
	return best
}

// dedupeByCanonical keeps, for each distinct canonical value, the
// candidate with the highest confidence (ties broken by method
// preference then earliest span), and returns the result sorted by the
// same ranking: confidence descending, then method preference, then
// earliest span.
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
		return isBetter(out[i], out[j])
	})
	return out
}

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
