package validate

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the calendar-date formats ParseDate attempts, in order.
var dateLayouts = []string{
	"2006-01-02",
	"02-Jan-2006",
	"02-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
}

// ParseDate parses raw into a calendar date using the catalog's known
// layouts. The semantic validator for every date kind (§4.2).
func ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate renders a calendar date in ISO-8601 form (§4.2).
func NormalizeDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// InYearWindow reports whether t falls within [now.Year()-minOffset,
// now.Year()+maxOffset] (§3 invariant 3).
func InYearWindow(t time.Time, now time.Time, minOffset, maxOffset int) bool {
	low := now.Year() - minOffset
	high := now.Year() + maxOffset
	return t.Year() >= low && t.Year() <= high
}

// DateConfidenceCap is the confidence ceiling applied when a date falls
// outside the plausibility window but is still kept (§3 invariant 3).
const DateConfidenceCap = 60

// ValidateWeight parses a weight value with its declared unit and
// normalizes to kilograms with three decimals (§4.2).
func ValidateWeight(raw string, unit string) (float64, bool) {
	var value float64
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%f", &value); err != nil {
		return 0, false
	}
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "KG", "KGS", "":
		return round3(value), true
	case "MT", "MTS", "TON", "TONNE", "TONNES":
		return round3(value * 1000), true
	case "LB", "LBS":
		return round3(value * 0.45359237), true
	default:
		return 0, false
	}
}

// ValidateVolume parses a volume value with its declared unit and
// normalizes to cubic meters (§4.2).
func ValidateVolume(raw string, unit string) (float64, bool) {
	var value float64
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%f", &value); err != nil {
		return 0, false
	}
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "CBM", "M3", "M³", "":
		return round3(value), true
	default:
		return 0, false
	}
}

func round3(v float64) float64 {
	return float64(int64(v*1000+0.5)) / 1000
}
