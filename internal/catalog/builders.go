package catalog

import (
	"strconv"
	"strings"

	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/validate"
)

// Builder validates and normalizes the literal text a pattern matched,
// returning the canonical value, whether it passed, and whether it only
// passed weakly per the regex extractor's confidence adjustment (§4.3).
// Every builder in this registry reports weak=false; the date
// plausibility window is applied by the callers (see buildCalendarDate).
type Builder func(raw string) (value model.FieldValue, ok bool, weak bool)

// Builders is the registry of stable builder identifiers referenced by
// catalog entries via BuilderID (§3's validator_id/normalizer_id,
// collapsed here into a single validate-then-normalize step per builder).
var Builders = map[string]Builder{
	"identifier_alnum":   buildIdentifierAlnum,
	"container_number":   buildContainerNumber,
	"seal_number":        buildSealNumber,
	"vessel_name":        buildVesselName,
	"voyage_number":      buildVoyageNumber,
	"port_name":          buildPortName,
	"unlocode":           buildUNLOCODE,
	"calendar_date":      buildCalendarDate,
	"free_text":          buildFreeText,
	"package_count":      buildPackageCount,
	"weight":             buildWeight,
	"volume":             buildVolume,
	"amount":             buildAmount,
	"container_type":     buildContainerType,
	"incoterms":          buildIncoterms,
}

func buildIdentifierAlnum(raw string) (model.FieldValue, bool, bool) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" || !validate.IsNotStopWord(v) {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

func buildContainerNumber(raw string) (model.FieldValue, bool, bool) {
	v := validate.NormalizeContainerNumber(raw)
	if !validate.IsContainerNumber(v) {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

func buildSealNumber(raw string) (model.FieldValue, bool, bool) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" || !validate.IsNotContainerOwnerCode(v) {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

func buildVesselName(raw string) (model.FieldValue, bool, bool) {
	v := strings.TrimSpace(raw)
	if !validate.IsVesselName(v) {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

func buildVoyageNumber(raw string) (model.FieldValue, bool, bool) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if !validate.IsVoyageNumber(v) {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

func buildPortName(raw string) (model.FieldValue, bool, bool) {
	v := strings.TrimSpace(raw)
	if !validate.IsPortName(v) {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

func buildUNLOCODE(raw string) (model.FieldValue, bool, bool) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if !validate.IsUNLOCODE(v) {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

// buildCalendarDate only checks that raw parses into a calendar date; the
// year-plausibility window (§3 invariant 3) is caller-configurable, so the
// regex extractor and schema engine apply it themselves after the value
// comes back from this builder.
func buildCalendarDate(raw string) (model.FieldValue, bool, bool) {
	t, ok := validate.ParseDate(raw)
	if !ok {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Date: t, HasDate: true, Text: validate.NormalizeDate(t)}, true, false
}

func buildFreeText(raw string) (model.FieldValue, bool, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

func buildPackageCount(raw string) (model.FieldValue, bool, bool) {
	v := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Number: n, HasNumber: true, Text: v}, true, false
}

func buildWeight(raw string) (model.FieldValue, bool, bool) {
	fields := strings.Fields(raw)
	if len(fields) < 1 {
		return model.FieldValue{}, false, false
	}
	unit := ""
	if len(fields) > 1 {
		unit = fields[len(fields)-1]
	}
	numPart := strings.Join(fields[:len(fields)-1], "")
	if unit == "" {
		numPart = fields[0]
	}
	kg, ok := validate.ValidateWeight(strings.ReplaceAll(numPart, ",", ""), unit)
	if !ok {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Number: kg, HasNumber: true, Text: raw}, true, false
}

func buildVolume(raw string) (model.FieldValue, bool, bool) {
	fields := strings.Fields(raw)
	if len(fields) < 1 {
		return model.FieldValue{}, false, false
	}
	unit := ""
	if len(fields) > 1 {
		unit = fields[len(fields)-1]
	}
	numPart := strings.Join(fields[:len(fields)-1], "")
	if unit == "" {
		numPart = fields[0]
	}
	cbm, ok := validate.ValidateVolume(strings.ReplaceAll(numPart, ",", ""), unit)
	if !ok {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Number: cbm, HasNumber: true, Text: raw}, true, false
}

func buildAmount(raw string) (model.FieldValue, bool, bool) {
	currency, value, ok := validate.ValidateAmount(raw)
	if !ok {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Amount: &model.Amount{Currency: currency, Value: value}, Text: raw}, true, false
}

var validContainerTypes = map[string]bool{
	"20GP": true, "40GP": true, "40HC": true, "45HC": true,
	"20RF": true, "40RF": true, "20OT": true, "40OT": true, "20FR": true, "40FR": true,
}

func buildContainerType(raw string) (model.FieldValue, bool, bool) {
	v := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if !validContainerTypes[v] {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}

var validIncoterms = map[string]bool{
	"EXW": true, "FCA": true, "FAS": true, "FOB": true, "CFR": true, "CIF": true,
	"CPT": true, "CIP": true, "DAP": true, "DPU": true, "DDP": true,
}

func buildIncoterms(raw string) (model.FieldValue, bool, bool) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if !validIncoterms[v] {
		return model.FieldValue{}, false, false
	}
	return model.FieldValue{Text: v}, true, false
}
