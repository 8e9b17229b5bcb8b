package catalog

import "github.com/freightlayer/extraction-engine/internal/model"

// phoneContext and hsCodeContext are the mandatory exclusion contexts for
// booking_number (§4.1): a bare alphanumeric pattern must never fire
// without one of these, or an adjacent label.
var phoneContext = mustRe(`(?i)(ph|tel|phone|fax|mobile)\s*[:.]?\s*\+?[\d\s().-]{6,}$`)
var hsCodeContext = mustRe(`(?i)(hs\s*code|h\.?s\.?\s*no)\s*[:.]?\s*$`)

func identifierEntries() []Entry {
	return []Entry{
		{
			PatternID:        "booking-001-labeled",
			Kind:             model.KindBookingNumber,
			Regex:            mustRe(`(?i)booking\s*(?:confirmation\s*)?(?:number|no\.?|ref(?:erence)?)?\s*[:#-]?\s*(?:BKG#?)?\s*([A-Z0-9]{6,15})`),
			ConfidenceWeight: 92,
			BuilderID:        "identifier_alnum",
			NegativeContext:  phoneContext,
		},
		{
			PatternID:        "booking-002-hashtag",
			Kind:             model.KindBookingNumber,
			Regex:            mustRe(`(?i)BKG#\s*([A-Z0-9]{6,15})`),
			ConfidenceWeight: 90,
			BuilderID:        "identifier_alnum",
			NegativeContext:  phoneContext,
		},
		{
			PatternID:        "booking-003-bare-with-neg",
			Kind:             model.KindBookingNumber,
			Regex:            mustRe(`\b([0-9]{9,10})\b`),
			ConfidenceWeight: 55,
			BuilderID:        "identifier_alnum",
			NegativeContext:  mustRe(`(?i)(ph|tel|phone|fax|mobile|hs\s*code|invoice|entry\s*no)\D{0,20}$`),
		},
		{
			PatternID:        "mbl-001-labeled",
			Kind:             model.KindMBLNumber,
			Regex:            mustRe(`(?i)(?:master\s*)?(?:m\.?b\.?/?l\.?|mbl)\s*(?:no\.?|number)?\s*[:#-]?\s*([A-Z0-9]{8,16})`),
			ConfidenceWeight: 90,
			BuilderID:        "identifier_alnum",
			NegativeContext:  phoneContext,
		},
		{
			PatternID:        "hbl-001-labeled",
			Kind:             model.KindHBLNumber,
			Regex:            mustRe(`(?i)(?:house\s*)?(?:h\.?b\.?/?l\.?|hbl)\s*(?:no\.?|number)?\s*[:#-]?\s*([A-Z0-9]{8,16})`),
			ConfidenceWeight: 90,
			BuilderID:        "identifier_alnum",
			NegativeContext:  phoneContext,
		},
		{
			PatternID:        "bl-001-generic-labeled",
			Kind:             model.KindBLNumber,
			Regex:            mustRe(`(?i)\bb[./]?l\s*(?:no\.?|number)?\s*[:#-]?\s*([A-Z0-9]{8,16})`),
			ConfidenceWeight: 85,
			BuilderID:        "identifier_alnum",
			NegativeContext:  phoneContext,
		},
		{
			PatternID:        "container-001-shape",
			Kind:             model.KindContainerNumber,
			Regex:            mustRe(`\b([A-Z]{4}[0-9]{7})\b`),
			ConfidenceWeight: 95,
			BuilderID:        "container_number",
		},
		{
			PatternID:        "seal-001-labeled",
			Kind:             model.KindSealNumber,
			Regex:            mustRe(`(?i)seal\s*(?:no\.?|number)?\s*[:#-]?\s*([A-Z0-9]{4,12})`),
			ConfidenceWeight: 85,
			BuilderID:        "seal_number",
			NegativeContext:  phoneContext,
		},
		{
			PatternID:        "entry-001-labeled",
			Kind:             model.KindEntryNumber,
			Regex:            mustRe(`(?i)entry\s*(?:no\.?|number)?\s*[:#-]?\s*([0-9]{3}-[0-9]{7,8})`),
			ConfidenceWeight: 88,
			BuilderID:        "identifier_alnum",
		},
		{
			PatternID:        "intransit-001-labeled",
			Kind:             model.KindInTransitNumber,
			Regex:            mustRe(`(?i)in[- ]transit\s*(?:no\.?|number)?\s*[:#-]?\s*([A-Z0-9]{6,15})`),
			ConfidenceWeight: 85,
			BuilderID:        "identifier_alnum",
			NegativeContext:  phoneContext,
		},
		{
			PatternID:        "isf-001-labeled",
			Kind:             model.KindISFNumber,
			Regex:            mustRe(`(?i)isf\s*(?:no\.?|number|bond)?\s*[:#-]?\s*([0-9]{2}-[0-9]{8}-[0-9])`),
			ConfidenceWeight: 88,
			BuilderID:        "identifier_alnum",
		},
		{
			PatternID:        "ams-001-labeled",
			Kind:             model.KindAMSNumber,
			Regex:            mustRe(`(?i)ams\s*(?:no\.?|number)?\s*[:#-]?\s*([A-Z0-9]{8,16})`),
			ConfidenceWeight: 85,
			BuilderID:        "identifier_alnum",
			NegativeContext:  phoneContext,
		},
		{
			PatternID:        "hscode-001-labeled",
			Kind:             model.KindHSCode,
			Regex:            mustRe(`(?i)h\.?s\.?\s*(?:code|no\.?|number)?\s*[:#-]?\s*([0-9]{4}\.?[0-9]{2}\.?[0-9]{0,4})`),
			ConfidenceWeight: 88,
			BuilderID:        "identifier_alnum",
		},
		{
			PatternID:        "invoice-001-labeled",
			Kind:             model.KindInvoiceNumber,
			Regex:            mustRe(`(?i)invoice\s*(?:no\.?|number|#)?\s*[:#-]?\s*([A-Z0-9/-]{5,18})`),
			ConfidenceWeight: 85,
			BuilderID:        "identifier_alnum",
			NegativeContext:  phoneContext,
		},
	}
}

// HSCodeExclusionContext is exported for the regex extractor's §4.3
// co-occurrence exclusion check (booking candidates found near an HS-code
// label are demoted, not just candidates lacking their own label).
var HSCodeExclusionContext = hsCodeContext

// PhoneExclusionContext is exported for the same purpose regarding
// phone-signature context.
var PhoneExclusionContext = phoneContext
