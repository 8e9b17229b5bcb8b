package schema

import (
	"regexp"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// Registry holds the immutable set of document schemas the engine knows
// about, keyed by document_type. Built once at startup the way the
// teacher builds its static category tables (internal/retrieval/
// spec_normalizer.go); no schema is inferred or loaded at runtime (§9).
type Registry struct {
	schemas map[string]*Document
}

// New builds the registry of built-in document schemas.
func New() *Registry {
	r := &Registry{schemas: make(map[string]*Document)}
	for _, d := range []*Document{
		bookingConfirmationSchema(),
		billOfLadingSchema(),
		mblSchema(),
		hblSchema(),
		arrivalNoticeSchema(),
		customsEntrySchema(),
		shippingInstructionsSchema(),
	} {
		r.schemas[d.DocumentType] = d
	}
	return r
}

// Schema returns the document schema for documentType, or false if it is
// unrecognized — the caller (C9) treats this as SchemaMismatch and skips
// C5, falling back to C3 only (§7).
func (r *Registry) Schema(documentType string) (*Document, bool) {
	d, ok := r.schemas[documentType]
	return d, ok
}

func mustRe(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

// routingFields returns the vessel/voyage/port label-anchored fields
// shared by every carrier document schema.
func routingFields() []Field {
	return []Field{
		{
			Name: "vessel_name", Kind: model.KindVesselName,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)vessel(?:\s*name)?\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*([A-Z][A-Za-z0-9 .'-]{2,40})`)},
			ValidatorID:   "vessel_name",
		},
		{
			Name: "voyage_number", Kind: model.KindVoyageNumber,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)voyage(?:\s*(?:no\.?|number))?\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*([A-Za-z0-9]{2,15})`)},
			ValidatorID:   "voyage_number",
		},
		{
			Name: "port_of_loading", Kind: model.KindPortOfLoading,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)port\s*of\s*loading\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*([A-Z][A-Za-z ,.'-]{2,60})`)},
			ValidatorID:   "port_name",
		},
		{
			Name: "port_of_discharge", Kind: model.KindPortOfDischarge,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)port\s*of\s*discharge\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*([A-Z][A-Za-z ,.'-]{2,60})`)},
			ValidatorID:   "port_name",
		},
	}
}

func dateFields() []Field {
	return []Field{
		{
			Name: "etd", Kind: model.KindETD,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)etd\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*` + dateValuePattern())},
			ValidatorID:   "calendar_date",
		},
		{
			Name: "eta", Kind: model.KindETA,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)eta\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*` + dateValuePattern())},
			ValidatorID:   "calendar_date",
		},
	}
}

// dateValuePattern mirrors the catalog's date literal shapes (see
// internal/catalog patterns_dates.go) so schema-declared date fields
// recognize the same calendar formats.
func dateValuePattern() string {
	return `([0-9]{4}-[0-9]{2}-[0-9]{2}|[0-9]{1,2}-[A-Za-z]{3}-[0-9]{2,4}|[A-Za-z]{3,9}\s+[0-9]{1,2},?\s+[0-9]{4}|[0-9]{1,2}\s+[A-Za-z]{3,9}\s+[0-9]{4}|[0-9]{1,2}/[0-9]{1,2}/[0-9]{4})`
}

func partyFields() []Field {
	return []Field{
		{Name: "shipper", Kind: model.KindShipper, LabelPatterns: []*regexp.Regexp{mustRe(`(?i)shipper\s*[:#-]?\s*\n`)}},
		{Name: "consignee", Kind: model.KindConsignee, LabelPatterns: []*regexp.Regexp{mustRe(`(?i)consignee\s*[:#-]?\s*\n`)}},
		{Name: "notify_party", Kind: model.KindNotifyParty, LabelPatterns: []*regexp.Regexp{mustRe(`(?i)notify\s*party\s*[:#-]?\s*\n`)}},
	}
}

func identifierFields() []Field {
	return []Field{
		{
			Name: "booking_number", Kind: model.KindBookingNumber,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)booking\s*(?:number|no\.?|confirmation)\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*([A-Za-z0-9-]{6,20})`)},
			ValidatorID:   "identifier_alnum",
		},
		{
			Name: "container_number", Kind: model.KindContainerNumber,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)container\s*(?:number|no\.?)\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*([A-Za-z]{4}[0-9]{7})`)},
			ValidatorID:   "container_number",
		},
	}
}

func cutoffFields() []Field {
	return []Field{
		{
			Name: "si_cutoff", Kind: model.KindSICutoff,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)si\s*cut[- ]?off\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*` + dateValuePattern())},
			ValidatorID:   "calendar_date",
		},
		{
			Name: "vgm_cutoff", Kind: model.KindVGMCutoff,
			LabelPatterns: []*regexp.Regexp{mustRe(`(?i)vgm\s*cut[- ]?off\s*[:#-]`)},
			ValuePatterns: []*regexp.Regexp{mustRe(`\s*` + dateValuePattern())},
			ValidatorID:   "calendar_date",
		},
	}
}

func bookingConfirmationSchema() *Document {
	return &Document{
		DocumentType: "booking_confirmation",
		DisplayName:  "Booking Confirmation",
		Category:     "booking",
		Fields:       append(identifierFields(), append(routingFields(), dateFields()...)...),
	}
}

func billOfLadingSchema() *Document {
	fields := append(identifierFields(), routingFields()...)
	fields = append(fields, dateFields()...)
	fields = append(fields, partyFields()...)
	return &Document{
		DocumentType: "bill_of_lading",
		DisplayName:  "Bill of Lading",
		Category:     "bl",
		Fields:       fields,
		Tables:       []Table{containerTable()},
		CarrierVariations: map[string][]Field{
			"CMA CGM": cmaCGMVesselVoyageOverlay(),
		},
	}
}

func mblSchema() *Document {
	d := billOfLadingSchema()
	d.DocumentType = "mbl"
	d.DisplayName = "Master Bill of Lading"
	return d
}

func hblSchema() *Document {
	d := billOfLadingSchema()
	d.DocumentType = "hbl"
	d.DisplayName = "House Bill of Lading"
	d.Sections = []Section{
		{
			Name:            "parties",
			StartMarkers:    []*regexp.Regexp{mustRe(`(?i)shipper\s*[:#-]?\s*\n`)},
			EndMarkers:      []*regexp.Regexp{mustRe(`(?i)\n\s*\n\s*(?:vessel|voyage|port)`)},
			FieldsInSection: []string{"shipper", "consignee", "notify_party"},
		},
	}
	return d
}

func arrivalNoticeSchema() *Document {
	fields := append(identifierFields(), routingFields()...)
	fields = append(fields, dateFields()...)
	fields = append(fields, Field{
		Name: "last_free_day", Kind: model.KindLastFreeDay,
		LabelPatterns: []*regexp.Regexp{mustRe(`(?i)last\s*free\s*day\s*[:#-]`)},
		ValuePatterns: []*regexp.Regexp{mustRe(`\s*` + dateValuePattern())},
		ValidatorID:   "calendar_date",
	})
	return &Document{
		DocumentType: "arrival_notice",
		DisplayName:  "Arrival Notice",
		Category:     "an",
		Fields:       fields,
	}
}

func customsEntrySchema() *Document {
	return &Document{
		DocumentType: "customs_entry",
		DisplayName:  "Customs Entry",
		Category:     "customs",
		Fields: []Field{
			{
				Name: "entry_number", Kind: model.KindEntryNumber,
				LabelPatterns: []*regexp.Regexp{mustRe(`(?i)entry\s*(?:number|no\.?)\s*[:#-]`)},
				ValuePatterns: []*regexp.Regexp{mustRe(`\s*([0-9]{3}-[0-9]{7})`)},
				ValidatorID:   "identifier_alnum",
			},
			identifierFields()[1],
		},
	}
}

func shippingInstructionsSchema() *Document {
	fields := append(identifierFields(), routingFields()...)
	fields = append(fields, cutoffFields()...)
	fields = append(fields, partyFields()...)
	return &Document{
		DocumentType: "shipping_instructions",
		DisplayName:  "Shipping Instructions",
		Category:     "si",
		Fields:       fields,
	}
}

func containerTable() Table {
	return Table{
		Name:           "containers",
		HeaderPatterns: []*regexp.Regexp{mustRe(`(?i)container\s*no\.?\s*(?:\||\s{2,})seal\s*no\.?`)},
		Columns: []Column{
			{Name: "container_number", Kind: model.KindContainerNumber},
			{Name: "seal_number", Kind: model.KindSealNumber},
			{Name: "gross_weight", Kind: model.KindGrossWeight},
			{Name: "volume", Kind: model.KindVolume},
		},
	}
}

// cmaCGMVesselVoyageOverlay grounds scenario S4: CMA CGM's format states
// the vessel and voyage before their shared label ("VESSEL / VOYAGE
// Vessel/Voyage:"), so the label pattern itself must carry the capture.
func cmaCGMVesselVoyageOverlay() []Field {
	return []Field{
		{
			Name: "vessel_name", Kind: model.KindVesselName,
			LabelPatterns: []*regexp.Regexp{mustRe(`([A-Z][A-Za-z0-9 .'-]+?)\s*/\s*[A-Za-z0-9]+\s*Vessel/Voyage:`)},
			ValidatorID:   "vessel_name",
		},
		{
			Name: "voyage_number", Kind: model.KindVoyageNumber,
			LabelPatterns: []*regexp.Regexp{mustRe(`[A-Z][A-Za-z0-9 .'-]+?\s*/\s*([A-Za-z0-9]+)\s*Vessel/Voyage:`)},
			ValidatorID:   "voyage_number",
		},
	}
}
