package pipeline

import (
	"github.com/freightlayer/extraction-engine/internal/config"
	"github.com/freightlayer/extraction-engine/internal/model"
)

// weight returns the §4.9 step 3 weighting class for kind: 3 critical, 2
// important, 1 otherwise.
func weight(kind model.Kind, fields config.FieldConfig) int {
	for _, c := range fields.Critical {
		if model.Kind(c) == kind {
			return 3
		}
	}
	for _, c := range fields.Important {
		if model.Kind(c) == kind {
			return 2
		}
	}
	return 1
}

// weightedConfidence computes the weighted-average confidence across
// every field and party currently on record, per §4.9 step 3.
func weightedConfidence(record *model.ExtractionRecord, fields config.FieldConfig) int {
	var totalWeight, weightedSum int
	for kind, rec := range record.Fields {
		w := weight(kind, fields)
		totalWeight += w
		weightedSum += w * rec.Confidence
	}
	for kind, recs := range record.MultiFields {
		w := weight(kind, fields)
		for _, rec := range recs {
			totalWeight += w
			weightedSum += w * rec.Confidence
		}
	}
	for kind, rec := range record.Parties {
		w := weight(kind, fields)
		totalWeight += w
		weightedSum += w * rec.Confidence
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// partyDemandingDocTypes declares the document types whose complete
// extraction requires party data (house bills and shipping
// instructions), used by AI-invocation rule (b).
var partyDemandingDocTypes = map[string]bool{
	"hbl":                   true,
	"shipping_instructions": true,
}

// decideAI applies §4.9 step 4's ordered rules and returns the gap kinds
// to request from C6, the rule name that fired, and whether to call at
// all. The first matching rule wins.
func decideAI(record *model.ExtractionRecord, overall int, cfg config.Config) (gaps []model.Kind, reason string, call bool) {
	medium := cfg.Thresholds.Medium
	mediumHigh := cfg.Thresholds.MediumHigh

	missingOrWeakCritical := 0
	var criticalGaps []model.Kind
	for _, c := range cfg.Fields.Critical {
		kind := model.Kind(c)
		rec, ok := record.Fields[kind]
		if !ok {
			if recs, hasMulti := record.MultiFields[kind]; hasMulti && len(recs) > 0 {
				continue
			}
			missingOrWeakCritical++
			criticalGaps = append(criticalGaps, kind)
			continue
		}
		if rec.Confidence < medium {
			missingOrWeakCritical++
			criticalGaps = append(criticalGaps, kind)
		}
	}

	allGaps := append([]model.Kind{}, criticalGaps...)
	for _, c := range cfg.Fields.Important {
		kind := model.Kind(c)
		if rec, ok := record.Fields[kind]; !ok || rec.Confidence < medium {
			allGaps = append(allGaps, kind)
		}
	}
	partyGapsPresent := partiesMissing(record)
	if partyGapsPresent {
		allGaps = appendPartyGaps(allGaps)
	}

	// (a) ≥3 critical fields missing or below medium threshold.
	if missingOrWeakCritical >= 3 {
		return dedupeKinds(allGaps), "critical_fields_missing", true
	}

	// (b) document type demands party extraction and parties are absent.
	if partyDemandingDocTypes[record.DocumentType] && partyGapsPresent {
		return dedupeKinds(allGaps), "parties_required_missing", true
	}

	// (c) overall confidence below medium threshold.
	if overall < medium {
		return dedupeKinds(allGaps), "overall_confidence_low", true
	}

	gapCount := len(allGaps)

	// (d) few gaps and confidence already high: do not call.
	if gapCount <= 2 && overall >= mediumHigh {
		return nil, "", false
	}

	// (e) more than 3 gaps.
	if gapCount > 3 {
		return dedupeKinds(allGaps), "gap_count_exceeds_threshold", true
	}

	if gapCount == 0 {
		return nil, "", false
	}
	return dedupeKinds(allGaps), "residual_gaps", true
}

func partiesMissing(record *model.ExtractionRecord) bool {
	for _, k := range []model.Kind{model.KindShipper, model.KindConsignee, model.KindNotifyParty} {
		if _, ok := record.Parties[k]; !ok {
			return true
		}
	}
	return false
}

func appendPartyGaps(gaps []model.Kind) []model.Kind {
	for _, k := range []model.Kind{model.KindShipper, model.KindConsignee, model.KindNotifyParty} {
		gaps = append(gaps, k)
	}
	return gaps
}

func dedupeKinds(kinds []model.Kind) []model.Kind {
	seen := make(map[model.Kind]bool)
	var out []model.Kind
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// fieldSourceCounts returns the AI-produced field count, the
// regex+schema field count, and how many critical identifiers were
// produced by AI — inputs to the judge invocation policy (§4.8).
func fieldSourceCounts(record *model.ExtractionRecord, criticalFields []string) (aiCount, regexSchemaCount, aiCriticalCount int) {
	critical := make(map[model.Kind]bool)
	for _, c := range criticalFields {
		critical[model.Kind(c)] = true
	}
	visit := func(kind model.Kind, method model.Method) {
		if method == model.MethodAI {
			aiCount++
			if critical[kind] {
				aiCriticalCount++
			}
		} else {
			regexSchemaCount++
		}
	}
	for kind, rec := range record.Fields {
		visit(kind, rec.Method)
	}
	for kind, recs := range record.MultiFields {
		for _, rec := range recs {
			visit(kind, rec.Method)
		}
	}
	for kind, rec := range record.Parties {
		visit(kind, rec.Method)
	}
	return
}

func countBySource(record *model.ExtractionRecord, method model.Method) int {
	n := 0
	for _, rec := range record.Fields {
		if rec.Method == method {
			n++
		}
	}
	for _, recs := range record.MultiFields {
		for _, rec := range recs {
			if rec.Method == method {
				n++
			}
		}
	}
	for _, rec := range record.Parties {
		if rec.Method == method {
			n++
		}
	}
	return n
}

func totalFieldCount(record *model.ExtractionRecord) int {
	n := len(record.Fields) + len(record.Parties)
	for _, recs := range record.MultiFields {
		n += len(recs)
	}
	return n
}

func fieldSources(record *model.ExtractionRecord) map[model.Kind]model.Method {
	out := make(map[model.Kind]model.Method)
	for kind, rec := range record.Fields {
		out[kind] = rec.Method
	}
	for kind, rec := range record.Parties {
		out[kind] = rec.Method
	}
	for kind, recs := range record.MultiFields {
		if len(recs) > 0 {
			out[kind] = recs[0].Method
		}
	}
	return out
}
