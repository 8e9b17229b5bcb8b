package aifill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/freightlayer/extraction-engine/internal/catalog"
	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/validate"
)

// YearWindow bounds date plausibility (§3 invariant 3), mirroring
// regexextract.YearWindow so C6 applies the same cap C3 and C5 do to an
// AI-returned date field.
type YearWindow struct {
	MinOffset int
	MaxOffset int
}

// DefaultYearWindow matches §6's documented default.
var DefaultYearWindow = YearWindow{MinOffset: 2, MaxOffset: 3}

// Request is C6's input contract (§4.6). Now and YearWindow bound date
// plausibility (§3 invariant 3); a zero Now uses time.Now() and a zero
// YearWindow uses DefaultYearWindow.
type Request struct {
	Text         string
	Gaps         []model.Kind
	CarrierHint  string
	DocumentType string
	MaxTextChars int
	Model        string
	Deadline     time.Duration
	Now          time.Time
	YearWindow   YearWindow
}

// baseConfidence is the baseline assigned to any surviving AI value
// (§4.6). caseInsensitivePenalty applies when the presence check only
// matched after case-folding and punctuation-stripping.
const (
	baseConfidence          = 78
	caseInsensitivePenalty  = 8
	partyOverlapThreshold   = 0.5
	defaultAIMaxTokens      = 800
)

// Fill asks provider for values for every kind in req.Gaps and returns
// the survivors keyed by kind. It never returns an error: any failure
// (network, bad JSON, empty response, deadline) yields an empty map and
// the caller continues with what it already has (§4.6, §7 LLMFailure).
func Fill(ctx context.Context, provider Provider, req Request) map[model.Kind]*model.FieldRecord {
	out := make(map[model.Kind]*model.FieldRecord)
	if provider == nil || len(req.Gaps) == 0 {
		return out
	}

	yearWindow := req.YearWindow
	if yearWindow == (YearWindow{}) {
		yearWindow = DefaultYearWindow
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
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
		deadline = 8 * time.Second
	}

	prompt := buildPrompt(text, req.Gaps, req.CarrierHint, req.DocumentType)
	reply, err := provider.Generate(ctx, prompt, defaultAIMaxTokens, 0, deadline)
	if err != nil || strings.TrimSpace(reply) == "" {
		return out
	}

	raw, ok := parseJSONObject(reply)
	if !ok {
		return out
	}

	for _, kind := range req.Gaps {
		msg, present := raw[string(kind)]
		if !present {
			continue
		}
		rec := buildFieldRecord(kind, msg, text, now, yearWindow)
		if rec != nil {
			out[kind] = rec
		}
	}
	return out
}

// parseJSONObject extracts and decodes a top-level JSON object from a
// model reply, tolerating a surrounding markdown code fence the way the
// teacher's categorization parser does (internal/llm/client.go
// parseCategorizationJSON).
func parseJSONObject(reply string) (map[string]json.RawMessage, bool) {
	content := strings.TrimSpace(reply)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content[start:end+1]), &out); err != nil {
		return nil, false
	}
	return out, true
}

func buildFieldRecord(kind model.Kind, raw json.RawMessage, sourceText string, now time.Time, yearWindow YearWindow) *model.FieldRecord {
	if model.PartyKinds[kind] {
		return buildPartyRecord(kind, raw, sourceText)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		// Numbers and other scalars may arrive unquoted.
		var anyVal interface{}
		if err2 := json.Unmarshal(raw, &anyVal); err2 != nil || anyVal == nil {
			return nil
		}
		text = fmt.Sprintf("%v", anyVal)
	}
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "null") || strings.EqualFold(text, "not found") {
		return nil
	}

	penalty, ok := presencePenalty(text, sourceText)
	if !ok {
		return nil
	}

	builder, hasBuilder := catalog.Builders[builderIDForKind(kind)]
	var value model.FieldValue
	weak := false
	if hasBuilder {
		v, valid, w := builder(text)
		if !valid {
			return nil
		}
		value, weak = v, w
	} else {
		value = model.FieldValue{Text: text}
	}

	if model.DateKinds[kind] && value.HasDate {
		if !validate.InYearWindow(value.Date, now, yearWindow.MinOffset, yearWindow.MaxOffset) {
			weak = true
		}
	}

	confidence := baseConfidence - penalty
	if model.DateKinds[kind] && weak {
		confidence = min(confidence, validate.DateConfidenceCap)
	}
	confidence = clampConfidence(confidence)

	return &model.FieldRecord{
		Kind:       kind,
		Value:      value,
		RawSpan:    text,
		Confidence: confidence,
		Method:     model.MethodAI,
	}
}

// presencePenalty re-checks raw for source presence: 0 if it occurs
// verbatim (case-sensitive), caseInsensitivePenalty if it occurs only
// after case-folding and punctuation-stripping, or ok=false if it cannot
// be found at all and must be dropped (§4.6).
func presencePenalty(raw, sourceText string) (penalty int, ok bool) {
	if strings.Contains(sourceText, raw) {
		return 0, true
	}
	if strings.Contains(stripPunctLower(sourceText), stripPunctLower(raw)) {
		return caseInsensitivePenalty, true
	}
	return 0, false
}

func stripPunctLower(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type partyJSON struct {
	Name         string   `json:"name"`
	AddressLines []string `json:"address_lines"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	PostalCode   string   `json:"postal_code"`
	Country      string   `json:"country"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	TaxID        string   `json:"tax_id"`
}

// buildPartyRecord decodes an AI-returned party object and applies the
// relaxed §3 invariant-1 rule: a party sub-field survives on token-level
// overlap with the source text rather than exact substring match.
func buildPartyRecord(kind model.Kind, raw json.RawMessage, sourceText string) *model.FieldRecord {
	var pj partyJSON
	if err := json.Unmarshal(raw, &pj); err != nil {
		return nil
	}
	if strings.TrimSpace(pj.Name) == "" {
		return nil
	}

	tokens := tokenSet(sourceText)
	fields := []string{pj.Name, pj.City, pj.State, pj.Country}
	fields = append(fields, pj.AddressLines...)
	overlap := tokenOverlap(fields, tokens)
	if overlap < partyOverlapThreshold {
		return nil
	}

	party := &model.Party{
		Name: strings.TrimSpace(pj.Name), AddressLines: pj.AddressLines,
		City: pj.City, State: pj.State, PostalCode: pj.PostalCode,
		Country: pj.Country, Phone: pj.Phone, Email: pj.Email, TaxID: pj.TaxID,
	}

	return &model.FieldRecord{
		Kind:       kind,
		Value:      model.FieldValue{Party: party},
		RawSpan:    strings.TrimSpace(pj.Name),
		Confidence: baseConfidence,
		Method:     model.MethodAI,
	}
}

func tokenSet(text string) map[string]bool {
	out := make(map[string]bool)
	for _, f := range strings.Fields(stripPunctLowerKeepSpace(text)) {
		if f != "" {
			out[f] = true
		}
	}
	return out
}

func stripPunctLowerKeepSpace(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func tokenOverlap(fields []string, sourceTokens map[string]bool) float64 {
	var total, matched int
	for _, f := range fields {
		for _, tok := range strings.Fields(stripPunctLowerKeepSpace(f)) {
			if tok == "" {
				continue
			}
			total++
			if sourceTokens[tok] {
				matched++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// builderIDForKind maps an entity kind to the C2 builder used to
// validate and normalize an AI-returned scalar value, mirroring the
// catalog entries that would ordinarily produce that kind.
func builderIDForKind(kind model.Kind) string {
	switch kind {
	case model.KindContainerNumber:
		return "container_number"
	case model.KindSealNumber:
		return "seal_number"
	case model.KindVesselName:
		return "vessel_name"
	case model.KindVoyageNumber:
		return "voyage_number"
	case model.KindPortOfLoading, model.KindPortOfDischarge, model.KindPlaceOfReceipt,
		model.KindPlaceOfDelivery, model.KindInlandLocation:
		return "port_name"
	case model.KindPortOfLoadingCode, model.KindPortOfDischargeCode:
		return "unlocode"
	case model.KindPackageCount, model.KindFreeTimeDays:
		return "package_count"
	case model.KindGrossWeight, model.KindNetWeight:
		return "weight"
	case model.KindVolume:
		return "volume"
	case model.KindAmount, model.KindDemurrageRate, model.KindStorageRate:
		return "amount"
	case model.KindContainerType:
		return "container_type"
	case model.KindIncoterms:
		return "incoterms"
	}
	if model.DateKinds[kind] {
		return "calendar_date"
	}
	return "free_text"
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

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
