package model

import (
	"time"

	"github.com/google/uuid"
)

// FieldValue is the canonicalized value carried by a FieldRecord. Exactly
// one of the typed accessors is meaningful for a given Kind; callers know
// which one from the Kind itself (closed set, see kinds.go).
type FieldValue struct {
	Text     string    `json:"text,omitempty"`
	Number   float64   `json:"number,omitempty"`
	HasNumber bool     `json:"-"`
	Date     time.Time `json:"date,omitempty"`
	HasDate  bool      `json:"-"`
	Strings  []string  `json:"strings,omitempty"`
	Party    *Party    `json:"party,omitempty"`
	Amount   *Amount   `json:"amount,omitempty"`
}

// Amount is the normalized currency+value pair for financial kinds.
type Amount struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// Party is the decomposed sub-field structure for party-block kinds.
type Party struct {
	Name          string `json:"name,omitempty"`
	AddressLines  []string `json:"address_lines,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Country       string `json:"country,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	TaxID         string `json:"tax_id,omitempty"`
}

// FieldRecord is the atomic result produced by any extractor (§3).
type FieldRecord struct {
	Kind       Kind       `json:"kind"`
	Value      FieldValue `json:"value"`
	RawSpan    string     `json:"raw_span"`
	Confidence int        `json:"confidence"`
	Method     Method     `json:"method"`
	PatternID  string     `json:"pattern_id,omitempty"`

	// SpanStart is the byte offset of RawSpan within the source text the
	// candidate was found in; used only to break ties by earliest position
	// (§3 invariant 4) and never serialized to external consumers.
	SpanStart int `json:"-"`
}

// FieldEvaluation is C8's per-field verdict.
type FieldEvaluation struct {
	Kind           Kind    `json:"kind"`
	Verdict        Verdict `json:"verdict"`
	Reason         string  `json:"reason"`
	SuggestedValue *FieldValue `json:"suggested_value,omitempty"`
}

// Issue is a record-level finding raised by any component via §7's error
// taxonomy, or by C8's cross-check.
type Issue struct {
	Severity    IssueSeverity `json:"severity"`
	Field       Kind          `json:"field,omitempty"`
	Description string        `json:"description"`
	Impact      string        `json:"impact,omitempty"`
}

// Judgement is C8's record-level output (§4.8).
type Judgement struct {
	FieldEvaluations []FieldEvaluation `json:"field_evaluations"`
	Issues           []Issue           `json:"issues"`
	Score            int               `json:"score"`
	Verdict          RecordVerdict     `json:"verdict"`
}

// Metadata is the per-record processing metadata the orchestrator emits
// (§4.9 step 7).
type Metadata struct {
	ProcessingTimeMS int64 `json:"processing_time_ms"`
	RegexTimeMS      int64 `json:"regex_time_ms"`
	AITimeMS         int64 `json:"ai_time_ms"`

	RegexFieldCount  int `json:"regex_field_count"`
	SchemaFieldCount int `json:"schema_field_count"`
	AIFieldCount     int `json:"ai_field_count"`
	TotalFieldCount  int `json:"total_field_count"`

	RegexConfidence   int `json:"regex_confidence"`
	OverallConfidence int `json:"overall_confidence"`

	Strategy Strategy `json:"strategy"`

	FieldSources map[Kind]Method `json:"field_sources"`

	AICalled bool   `json:"ai_called"`
	AIReason string `json:"ai_reason,omitempty"`

	CatalogVersion   int `json:"catalog_version"`
	SchemaSetVersion int `json:"schema_set_version"`

	Issues []Issue `json:"issues,omitempty"`
}

// ExtractionRecord is the output of C9: one per input (§3).
type ExtractionRecord struct {
	// RecordID uniquely identifies one record instance. A correction
	// (§3 Lifecycle) produces a new RecordID and links back to this one
	// via CorrectedFrom on the revised record.
	RecordID        string            `json:"record_id"`
	SourceRef       string            `json:"source_ref"`
	SenderCategory  *SenderCategory   `json:"sender_category,omitempty"`
	Carrier         *string           `json:"carrier,omitempty"`
	DocumentType    string            `json:"document_type,omitempty"`
	Fields          map[Kind]*FieldRecord `json:"fields"`
	MultiFields     map[Kind][]*FieldRecord `json:"multi_fields,omitempty"`
	Parties         map[Kind]*FieldRecord `json:"parties"`
	Tables          map[string][]map[string]*FieldRecord `json:"tables"`
	Metadata        Metadata          `json:"metadata"`
	Judgement       *Judgement        `json:"judgement,omitempty"`

	State          RecordState `json:"state"`
	CorrectedFrom  string      `json:"corrected_from,omitempty"`
	CorrectionsApplied []Kind  `json:"corrections_applied,omitempty"`
}

// NewRecordID mints a new record identifier, grounded on the teacher's
// own use of github.com/google/uuid for storage record ids
// (internal/storage/repositories.go).
func NewRecordID() string {
	return uuid.NewString()
}

// NewExtractionRecord returns a freshly created (§3 Lifecycle) record.
func NewExtractionRecord(sourceRef string) *ExtractionRecord {
	return &ExtractionRecord{
		RecordID:    NewRecordID(),
		SourceRef:   sourceRef,
		Fields:      make(map[Kind]*FieldRecord),
		MultiFields: make(map[Kind][]*FieldRecord),
		Parties:     make(map[Kind]*FieldRecord),
		Tables:      make(map[string][]map[string]*FieldRecord),
		State:       StateCreated,
	}
}
