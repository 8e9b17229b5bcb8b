package pipeline

import "github.com/freightlayer/extraction-engine/internal/model"

// ApplyCorrections implements C8's optional corrections-application step
// (§4.8 "Corrections application"): every field whose judge verdict is
// "incorrect" and carries a SuggestedValue is replaced on a new record
// that links back to the original via CorrectedFrom. It never mutates
// record, and returns record unchanged when there is nothing to apply
// (testable property 8: corrections never raise a field's confidence
// above its pre-correction value, so the replacement keeps the
// original's confidence rather than inventing one for the suggestion).
func ApplyCorrections(record *model.ExtractionRecord) *model.ExtractionRecord {
	if record == nil || record.Judgement == nil {
		return record
	}

	var toApply []model.FieldEvaluation
	for _, ev := range record.Judgement.FieldEvaluations {
		if ev.Verdict == model.VerdictIncorrect && ev.SuggestedValue != nil {
			if _, ok := record.Fields[ev.Kind]; ok {
				toApply = append(toApply, ev)
			}
		}
	}
	if len(toApply) == 0 {
		return record
	}

	corrected := *record
	corrected.RecordID = model.NewRecordID()
	corrected.CorrectedFrom = record.RecordID
	corrected.State = model.StateCorrected
	corrected.Fields = make(map[model.Kind]*model.FieldRecord, len(record.Fields))
	for k, v := range record.Fields {
		corrected.Fields[k] = v
	}
	corrected.CorrectionsApplied = append([]model.Kind(nil), record.CorrectionsApplied...)

	for _, ev := range toApply {
		original := corrected.Fields[ev.Kind]
		corrected.Fields[ev.Kind] = &model.FieldRecord{
			Kind:       original.Kind,
			Value:      *ev.SuggestedValue,
			RawSpan:    original.RawSpan,
			Confidence: original.Confidence,
			Method:     original.Method,
			PatternID:  original.PatternID,
		}
		corrected.CorrectionsApplied = append(corrected.CorrectionsApplied, ev.Kind)
	}
	return &corrected
}
