package catalog

import (
	"strconv"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// dateValuePattern matches the date literals the builder can parse (see
// validate.dateLayouts): ISO, "02-Jan-2006", "Jan 2, 2006", slash forms.
const dateValuePattern = `([0-9]{4}-[0-9]{2}-[0-9]{2}|[0-9]{1,2}-[A-Za-z]{3}-[0-9]{2,4}|[A-Za-z]{3,9}\s+[0-9]{1,2},?\s+[0-9]{4}|[0-9]{1,2}\s+[A-Za-z]{3,9}\s+[0-9]{4}|[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}|[0-9]{4}/[0-9]{1,2}/[0-9]{1,2})`

func dateEntries() []Entry {
	labels := []struct {
		kind  model.Kind
		label string
	}{
		{model.KindETD, `(?i)etd|estimated\s*(?:time|date)\s*of\s*departure`},
		{model.KindETA, `(?i)eta|estimated\s*(?:time|date)\s*of\s*arrival`},
		{model.KindSICutoff, `(?i)si\s*cut[- ]?off|shipping\s*instructions?\s*cut[- ]?off`},
		{model.KindVGMCutoff, `(?i)vgm\s*cut[- ]?off`},
		{model.KindCargoCutoff, `(?i)cargo\s*cut[- ]?off|cy\s*cut[- ]?off`},
		{model.KindGateCutoff, `(?i)gate\s*cut[- ]?off`},
		{model.KindDocCutoff, `(?i)doc(?:umentation)?\s*cut[- ]?off`},
		{model.KindShippedOnBoardDate, `(?i)shipped\s*on\s*board|on\s*board\s*date|s\.?o\.?b\.?\s*date`},
		{model.KindLastFreeDay, `(?i)last\s*free\s*day|lfd`},
	}
	var entries []Entry
	for i, l := range labels {
		entries = append(entries, Entry{
			PatternID:        idFor("date", i),
			Kind:             l.kind,
			Regex:            mustRe(l.label + `\s*[:#-]?\s*` + dateValuePattern),
			ConfidenceWeight: 85,
			BuilderID:        "calendar_date",
		})
	}
	entries = append(entries, Entry{
		PatternID:        "freetimedays-001-labeled",
		Kind:             model.KindFreeTimeDays,
		Regex:            mustRe(`(?i)free\s*time\s*[:#-]?\s*([0-9]{1,3})\s*days?`),
		ConfidenceWeight: 80,
		BuilderID:        "package_count",
	})
	return entries
}

func idFor(prefix string, i int) string {
	return prefix + "-" + strconv.Itoa(i+1) + "-labeled"
}
