package catalog

import "github.com/freightlayer/extraction-engine/internal/model"

func cargoEntries() []Entry {
	return []Entry{
		{
			PatternID:        "commodity-001-labeled",
			Kind:             model.KindCommodityDescription,
			Regex:            mustRe(`(?i)(?:commodity|description\s*of\s*goods|cargo\s*description)\s*[:#-]?\s*([A-Za-z0-9 ,./'&-]{3,120})`),
			ConfidenceWeight: 75,
			BuilderID:        "free_text",
		},
		{
			PatternID:        "packages-001-labeled",
			Kind:             model.KindPackageCount,
			Regex:            mustRe(`(?i)(?:no\.?\s*of\s*packages|package\s*count|pkgs?)\s*[:#-]?\s*([0-9,]{1,9})`),
			ConfidenceWeight: 80,
			BuilderID:        "package_count",
		},
		{
			PatternID:        "grossweight-001-labeled",
			Kind:             model.KindGrossWeight,
			Regex:            mustRe(`(?i)gross\s*weight\s*[:#-]?\s*([0-9,.]+\s*(?:KGS?|MTS?|LBS?)?)`),
			ConfidenceWeight: 82,
			BuilderID:        "weight",
		},
		{
			PatternID:        "netweight-001-labeled",
			Kind:             model.KindNetWeight,
			Regex:            mustRe(`(?i)net\s*weight\s*[:#-]?\s*([0-9,.]+\s*(?:KGS?|MTS?|LBS?)?)`),
			ConfidenceWeight: 82,
			BuilderID:        "weight",
		},
		{
			PatternID:        "volume-001-labeled",
			Kind:             model.KindVolume,
			Regex:            mustRe(`(?i)(?:volume|measurement)\s*[:#-]?\s*([0-9,.]+\s*(?:CBM|M3|M³)?)`),
			ConfidenceWeight: 78,
			BuilderID:        "volume",
		},
		{
			PatternID:        "containertype-001-labeled",
			Kind:             model.KindContainerType,
			Regex:            mustRe(`\b(20GP|40GP|40HC|45HC|20RF|40RF|20OT|40OT|20FR|40FR)\b`),
			ConfidenceWeight: 85,
			BuilderID:        "container_type",
		},
		{
			PatternID:        "temperature-001-labeled",
			Kind:             model.KindTemperature,
			Regex:            mustRe(`(?i)(?:temperature|reefer\s*temp)\s*[:#-]?\s*(-?[0-9]{1,3}(?:\.[0-9])?\s*(?:C|F)?)`),
			ConfidenceWeight: 78,
			BuilderID:        "free_text",
		},
		{
			PatternID:        "incoterms-001-bare",
			Kind:             model.KindIncoterms,
			Regex:            mustRe(`\b(EXW|FCA|FAS|FOB|CFR|CIF|CPT|CIP|DAP|DPU|DDP)\b`),
			ConfidenceWeight: 82,
			BuilderID:        "incoterms",
		},
	}
}
