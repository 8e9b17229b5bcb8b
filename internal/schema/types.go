// Package schema implements C5: the document schema engine. It operates
// against a single document schema selected by document_type, extracting
// labeled fields, party blocks, and tabular sections using
// schema-declared label/value patterns and section markers (§4.5).
//
// Schemas are immutable static data, built the way the teacher builds its
// static category tables (internal/retrieval/spec_normalizer.go) rather
// than inferred or loaded from disk at runtime (§9).
package schema

import (
	"regexp"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// Field declares one schema-anchored field (§3 Document Schema).
type Field struct {
	Name          string
	Kind          model.Kind
	Required      bool
	LabelPatterns []*regexp.Regexp
	ValuePatterns []*regexp.Regexp
	ValidatorID   string
}

// Section restricts a field search to a text region (§4.5 step 1).
type Section struct {
	Name            string
	StartMarkers    []*regexp.Regexp
	EndMarkers      []*regexp.Regexp
	FieldsInSection []string
}

// Column declares one table column (§3 Document Schema tables[]).
type Column struct {
	Name           string
	Kind           model.Kind
	HeaderPatterns []*regexp.Regexp
	ValuePatterns  []*regexp.Regexp
}

// Table declares one tabular section (§4.5 step 4).
type Table struct {
	Name           string
	HeaderPatterns []*regexp.Regexp
	Columns        []Column
}

// Document is one document schema (§3).
type Document struct {
	DocumentType string
	DisplayName  string
	Category     string
	Fields       []Field
	Sections     []Section
	Tables       []Table

	// CarrierVariations overlays fields keyed by carrier name; an
	// overridden field inherits defaults for unspecified attributes
	// (§4.5 "Schema carrier variations").
	CarrierVariations map[string][]Field
}

// fieldsForCarrier returns d.Fields with any carrier-variation overlay
// applied: a variation field with the same Name replaces the base field
// in place, inheriting the base's attributes for anything left zero.
func (d *Document) fieldsForCarrier(carrier string) []Field {
	overlay, ok := d.CarrierVariations[carrier]
	if !ok || carrier == "" {
		return d.Fields
	}
	byName := make(map[string]Field, len(d.Fields))
	order := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		byName[f.Name] = f
		order = append(order, f.Name)
	}
	for _, ov := range overlay {
		base, existed := byName[ov.Name]
		merged := mergeField(base, ov)
		byName[ov.Name] = merged
		if !existed {
			order = append(order, ov.Name)
		}
	}
	out := make([]Field, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

func mergeField(base, overlay Field) Field {
	merged := base
	merged.Name = overlay.Name
	if overlay.Kind != "" {
		merged.Kind = overlay.Kind
	}
	if len(overlay.LabelPatterns) > 0 {
		merged.LabelPatterns = overlay.LabelPatterns
	}
	if len(overlay.ValuePatterns) > 0 {
		merged.ValuePatterns = overlay.ValuePatterns
	}
	if overlay.ValidatorID != "" {
		merged.ValidatorID = overlay.ValidatorID
	}
	merged.Required = base.Required || overlay.Required
	return merged
}
