// Package country ships the static country list, stop-word list and
// container-owner-code prefixes used by C2's exclusion checks and C5's
// party-block address-terminator heuristic. Data-only, versioned by the
// catalog version like every other pattern-authoring module (§4.1, §9).
package country

import "strings"

// list is not exhaustive of every ISO-3166 country name; it covers the
// set that occurs often enough in freight correspondence to anchor party
// block termination and is extended as gaps are found in production
// traffic, following the teacher's buildCategoryAliases()-style static
// builder approach (internal/retrieval/spec_normalizer.go).
var list = []string{
	"United States", "USA", "U.S.A.", "Canada", "Mexico", "Brazil", "Argentina",
	"China", "Hong Kong", "Taiwan", "Japan", "South Korea", "Korea", "Vietnam",
	"Thailand", "Singapore", "Malaysia", "Indonesia", "Philippines", "India",
	"Pakistan", "Bangladesh", "Sri Lanka", "United Arab Emirates", "UAE",
	"Saudi Arabia", "Turkey", "Egypt", "South Africa", "Nigeria", "Kenya",
	"United Kingdom", "UK", "Ireland", "France", "Germany", "Netherlands",
	"Belgium", "Spain", "Portugal", "Italy", "Greece", "Poland", "Sweden",
	"Norway", "Denmark", "Finland", "Russia", "Ukraine", "Australia",
	"New Zealand", "Chile", "Peru", "Colombia", "Panama", "Ecuador",
}

// stopWords are common words that must never be emitted as a candidate
// value for identifier/routing kinds (§4.2 exclusion checks).
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"regards": true, "thanks": true, "dear": true, "hello": true, "hi": true,
	"please": true, "attached": true, "best": true, "sincerely": true,
	"shipment": true, "booking": true, "container": true, "number": true,
	"vessel": true, "voyage": true, "port": true, "date": true, "of": true,
	"to": true, "in": true, "on": true, "at": true, "is": true, "are": true,
}

// ownerCodePrefixes lists known ISO-6346 owner codes (3 letters) whose
// shape can collide with a seal-number candidate (§4.2 exclusion checks).
// A seal candidate whose first four letters match a known container
// owner code plus category letter (U, J or Z) is rejected rather than
// emitted.
var ownerCodePrefixes = map[string]bool{
	"MSK": true, "MSC": true, "CMA": true, "HLC": true, "OOL": true,
	"COS": true, "EGH": true, "ONE": true, "YML": true, "HMM": true,
	"ZIM": true, "APL": true, "MAE": true, "TRH": true, "TEM": true,
}

// IsCountryStart reports whether line begins with a known country name,
// used by C5 to terminate a party-block address region (§4.5 step 3).
func IsCountryStart(line string) bool {
	_, ok := MatchCountryName(line)
	return ok
}

// MatchCountryName returns the canonical country name line begins with,
// if any, used by C5 to pull the country out of a party address block.
func MatchCountryName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	upper := strings.ToUpper(trimmed)
	var longest string
	for _, c := range list {
		if strings.HasPrefix(upper, strings.ToUpper(c)) && len(c) > len(longest) {
			longest = c
		}
	}
	if longest == "" {
		return "", false
	}
	return longest, true
}

// IsStopWord reports whether word is common-word garbage that must never
// be emitted as a candidate identifier value.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(strings.TrimSpace(word))]
}

// LooksLikeContainerOwnerCode reports whether the first four letters of
// value are a known ISO-6346 owner code followed by an equipment category
// letter (U, J or Z), used to reject seal-number candidates that are
// really container-number fragments.
func LooksLikeContainerOwnerCode(value string) bool {
	v := strings.ToUpper(strings.TrimSpace(value))
	if len(v) < 4 {
		return false
	}
	return ownerCodePrefixes[v[:3]] && strings.IndexByte("UJZ", v[3]) >= 0
}
