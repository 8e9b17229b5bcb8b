package catalog

import "github.com/freightlayer/extraction-engine/internal/model"

func routingEntries() []Entry {
	return []Entry{
		{
			PatternID:        "vessel-001-labeled",
			Kind:             model.KindVesselName,
			Regex:            mustRe(`(?i)vessel\s*(?:name)?\s*[:#-]?\s*([A-Z][A-Za-z0-9 .'-]{2,30})`),
			ConfidenceWeight: 80,
			BuilderID:        "vessel_name",
		},
		{
			PatternID:        "voyage-001-labeled",
			Kind:             model.KindVoyageNumber,
			Regex:            mustRe(`(?i)voyage\s*(?:no\.?|number)?\s*[:#-]?\s*([A-Z0-9]{3,12})`),
			ConfidenceWeight: 80,
			BuilderID:        "voyage_number",
		},
		{
			PatternID:        "vesselvoyage-001-slash",
			Kind:             model.KindVesselName,
			Regex:            mustRe(`([A-Z][A-Za-z .'-]{2,25})\s*/\s*([A-Z0-9]{4,12})\s*Vessel\s*/\s*Voyage`),
			ConfidenceWeight: 78,
			BuilderID:        "vessel_name",
		},
		{
			PatternID:        "pol-001-labeled",
			Kind:             model.KindPortOfLoading,
			Regex:            mustRe(`(?i)port\s*of\s*loading\s*[:#-]?\s*([A-Z][A-Za-z ,.'-]{2,40})`),
			ConfidenceWeight: 82,
			BuilderID:        "port_name",
		},
		{
			PatternID:        "pod-001-labeled",
			Kind:             model.KindPortOfDischarge,
			Regex:            mustRe(`(?i)port\s*of\s*discharge\s*[:#-]?\s*([A-Z][A-Za-z ,.'-]{2,40})`),
			ConfidenceWeight: 82,
			BuilderID:        "port_name",
		},
		{
			PatternID:        "pol-code-001",
			Kind:             model.KindPortOfLoadingCode,
			Regex:            mustRe(`(?i)port\s*of\s*loading\s*(?:code|unlocode)\s*[:#-]?\s*([A-Z]{5})`),
			ConfidenceWeight: 85,
			BuilderID:        "unlocode",
		},
		{
			PatternID:        "pod-code-001",
			Kind:             model.KindPortOfDischargeCode,
			Regex:            mustRe(`(?i)port\s*of\s*discharge\s*(?:code|unlocode)\s*[:#-]?\s*([A-Z]{5})`),
			ConfidenceWeight: 85,
			BuilderID:        "unlocode",
		},
		{
			PatternID:        "por-001-labeled",
			Kind:             model.KindPlaceOfReceipt,
			Regex:            mustRe(`(?i)place\s*of\s*receipt\s*[:#-]?\s*([A-Z][A-Za-z ,.'-]{2,40})`),
			ConfidenceWeight: 80,
			BuilderID:        "port_name",
		},
		{
			PatternID:        "pod2-001-labeled",
			Kind:             model.KindPlaceOfDelivery,
			Regex:            mustRe(`(?i)place\s*of\s*delivery\s*[:#-]?\s*([A-Z][A-Za-z ,.'-]{2,40})`),
			ConfidenceWeight: 80,
			BuilderID:        "port_name",
		},
		{
			PatternID:        "inland-001-labeled",
			Kind:             model.KindInlandLocation,
			Regex:            mustRe(`(?i)inland\s*(?:location|destination)\s*[:#-]?\s*([A-Z][A-Za-z ,.'-]{2,40})`),
			ConfidenceWeight: 78,
			BuilderID:        "port_name",
		},
		{
			PatternID:        "carrier-001-labeled",
			Kind:             model.KindCarrier,
			Regex:            mustRe(`(?i)carrier\s*[:#-]?\s*([A-Z][A-Za-z0-9 .'-]{2,30})`),
			ConfidenceWeight: 75,
			BuilderID:        "free_text",
		},
	}
}
