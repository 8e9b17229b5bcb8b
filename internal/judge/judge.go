// Package judge implements C8: the quality judge. It cross-checks a
// merged extraction record against the source text via an LLM and
// issues per-field verdicts, record-level issues, and a terminal
// verdict (§4.8). Like C6, it is a bounded, non-deterministic edge: any
// parse or network failure degrades to a conservative needs_review
// rather than propagating an error (§5, §7).
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/freightlayer/extraction-engine/internal/aifill"
	"github.com/freightlayer/extraction-engine/internal/model"
)

// ShouldInvoke implements C9's judge invocation policy (§4.8): the judge
// runs when the document type is high-value, overall confidence sits in
// the medium band, AI produced more fields than regex+schema combined,
// or two or more critical identifiers came from AI.
func ShouldInvoke(documentType string, highValueDocTypes []string, overallConfidence, lowThreshold, mediumHighThreshold int, aiFieldCount, regexSchemaFieldCount int, aiCriticalFieldCount int) bool {
	for _, dt := range highValueDocTypes {
		if dt == documentType {
			return true
		}
	}
	if overallConfidence >= lowThreshold && overallConfidence < mediumHighThreshold {
		return true
	}
	if aiFieldCount > regexSchemaFieldCount {
		return true
	}
	if aiCriticalFieldCount >= 2 {
		return true
	}
	return false
}

// Request is C8's input: the merged record and the raw text it must be
// checked against.
type Request struct {
	Record           *model.ExtractionRecord
	Text             string
	ApproveThreshold int
	RejectThreshold  int
	MaxTextChars     int
	Deadline         time.Duration
}

// Judge runs provider against req and returns a Judgement. On any
// failure it returns a conservative needs_review scored at the record's
// existing overall confidence (§4.8).
func Judge(ctx context.Context, provider aifill.Provider, req Request) *model.Judgement {
	fallback := &model.Judgement{
		Verdict: model.RecordNeedsReview,
		Score:   req.Record.Metadata.OverallConfidence,
	}
	if provider == nil {
		return fallback
	}

	maxChars := req.MaxTextChars
	if maxChars <= 0 {
		maxChars = 10000
	}
	text := req.Text
	if len(text) > maxChars {
		text = text[:maxChars]
	}

	deadline := req.Deadline
	if deadline <= 0 {
		deadline = 15 * time.Second
	}

	prompt := buildJudgePrompt(req.Record, text)
	reply, err := provider.Generate(ctx, prompt, 1200, 0, deadline)
	if err != nil || strings.TrimSpace(reply) == "" {
		return fallback
	}

	parsed, ok := parseJudgeReply(reply)
	if !ok {
		return fallback
	}

	judgement := &model.Judgement{
		FieldEvaluations: parsed.evaluations,
		Issues:           parsed.issues,
		Score:            clampScore(parsed.score),
	}
	switch {
	case judgement.Score >= req.ApproveThreshold:
		judgement.Verdict = model.RecordApproved
	case judgement.Score < req.RejectThreshold:
		judgement.Verdict = model.RecordRejected
	default:
		judgement.Verdict = model.RecordNeedsReview
	}
	return judgement
}

type judgeReply struct {
	evaluations []model.FieldEvaluation
	issues      []model.Issue
	score       int
}

type rawFieldEval struct {
	Kind           string           `json:"kind"`
	Verdict        string           `json:"verdict"`
	Reason         string           `json:"reason"`
	SuggestedValue *json.RawMessage `json:"suggested_value"`
}

type rawIssue struct {
	Severity    string `json:"severity"`
	Field       string `json:"field"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type rawJudgement struct {
	FieldEvaluations []rawFieldEval `json:"field_evaluations"`
	Issues           []rawIssue     `json:"issues"`
	Score            int            `json:"score"`
}

// parseJudgeReply decodes the judge's strict-JSON reply, tolerating a
// markdown code fence the way every LLM-facing parser in this engine
// does (aifill.parseJSONObject, same idiom).
func parseJudgeReply(reply string) (judgeReply, bool) {
	content := strings.TrimSpace(reply)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return judgeReply{}, false
	}

	var raw rawJudgement
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return judgeReply{}, false
	}

	out := judgeReply{score: raw.Score}
	for _, fe := range raw.FieldEvaluations {
		eval := model.FieldEvaluation{
			Kind:    model.Kind(fe.Kind),
			Verdict: model.Verdict(fe.Verdict),
			Reason:  fe.Reason,
		}
		if fe.SuggestedValue != nil {
			var text string
			if err := json.Unmarshal(*fe.SuggestedValue, &text); err == nil && text != "" {
				eval.SuggestedValue = &model.FieldValue{Text: text}
			}
		}
		out.evaluations = append(out.evaluations, eval)
	}
	for _, ri := range raw.Issues {
		out.issues = append(out.issues, model.Issue{
			Severity:    model.IssueSeverity(ri.Severity),
			Field:       model.Kind(ri.Field),
			Description: ri.Description,
			Impact:      ri.Impact,
		})
	}
	return out, true
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// buildJudgePrompt renders the merged record as compact JSON alongside
// the source text so the model can cross-check every non-null field.
func buildJudgePrompt(record *model.ExtractionRecord, text string) string {
	fieldsJSON, _ := json.Marshal(summarizeFields(record))

	var b strings.Builder
	b.WriteString("You are auditing extracted freight logistics fields against their source text.\n")
	b.WriteString("For each field below, decide if its value is actually supported by the text.\n")
	b.WriteString("Return ONLY JSON of this shape, no prose, no markdown fences:\n")
	b.WriteString(`{"field_evaluations":[{"kind":"...","verdict":"correct|likely_correct|suspicious|incorrect|missing","reason":"...","suggested_value":"... or omit"}],` +
		`"issues":[{"severity":"critical|warning|info","field":"...","description":"...","impact":"..."}],"score":0-100}` + "\n\n")
	b.WriteString("EXTRACTED FIELDS:\n")
	b.Write(fieldsJSON)
	b.WriteString("\n\nSOURCE TEXT:\n")
	b.WriteString(text)
	return b.String()
}

type fieldSummary struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	RawSpan string `json:"raw_span"`
	Method string `json:"method"`
}

func summarizeFields(record *model.ExtractionRecord) []fieldSummary {
	var out []fieldSummary
	for kind, rec := range record.Fields {
		out = append(out, fieldSummary{
			Kind: string(kind), Value: displayValue(rec.Value), RawSpan: rec.RawSpan, Method: string(rec.Method),
		})
	}
	for kind, rec := range record.Parties {
		name := ""
		if rec.Value.Party != nil {
			name = rec.Value.Party.Name
		}
		out = append(out, fieldSummary{Kind: string(kind), Value: name, RawSpan: rec.RawSpan, Method: string(rec.Method)})
	}
	return out
}

func displayValue(v model.FieldValue) string {
	switch {
	case v.HasDate:
		return v.Date.Format("2006-01-02")
	case v.Amount != nil:
		return fmt.Sprintf("%s %.2f", v.Amount.Currency, v.Amount.Value)
	case v.HasNumber:
		return fmt.Sprintf("%v", v.Number)
	default:
		return v.Text
	}
}
