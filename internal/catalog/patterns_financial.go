package catalog

import "github.com/freightlayer/extraction-engine/internal/model"

func financialEntries() []Entry {
	return []Entry{
		{
			PatternID:        "amount-001-labeled",
			Kind:             model.KindAmount,
			Regex:            mustRe(`(?i)(?:amount|total|freight\s*charges?)\s*[:#-]?\s*((?:USD|EUR|GBP|CNY|JPY|INR|SGD|HKD|AED|KRW|AUD|CAD|CHF|SEK|NOK|\$|€|£|¥)\s?[0-9][0-9,]*(?:\.[0-9]{2})?)`),
			ConfidenceWeight: 82,
			BuilderID:        "amount",
		},
		{
			PatternID:        "freightterms-001-labeled",
			Kind:             model.KindFreightTerms,
			Regex:            mustRe(`(?i)freight\s*terms?\s*[:#-]?\s*(prepaid|collect|third\s*party)`),
			ConfidenceWeight: 85,
			BuilderID:        "free_text",
		},
		{
			PatternID:        "demurrage-001-labeled",
			Kind:             model.KindDemurrageRate,
			Regex:            mustRe(`(?i)demurrage\s*rate\s*[:#-]?\s*((?:USD|EUR|GBP|\$)\s?[0-9][0-9,]*(?:\.[0-9]{2})?)`),
			ConfidenceWeight: 80,
			BuilderID:        "amount",
		},
		{
			PatternID:        "storage-001-labeled",
			Kind:             model.KindStorageRate,
			Regex:            mustRe(`(?i)storage\s*rate\s*[:#-]?\s*((?:USD|EUR|GBP|\$)\s?[0-9][0-9,]*(?:\.[0-9]{2})?)`),
			ConfidenceWeight: 80,
			BuilderID:        "amount",
		},
	}
}
