package schema

import (
	"regexp"
	"strings"

	"github.com/freightlayer/extraction-engine/internal/country"
	"github.com/freightlayer/extraction-engine/internal/model"
)

var (
	partyPhoneRe   = regexp.MustCompile(`(?i)(?:tel|phone|ph)\s*[:#-]?\s*([+0-9][0-9 ()-]{6,19})`)
	partyEmailRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	partyCityLine  = regexp.MustCompile(`^(.+?),\s*([A-Za-z .]{2,})\s+([A-Za-z0-9 -]{3,10})$`)
	partyLabelStop = regexp.MustCompile(`(?i)^(?:shipper|consignee|notify\s*party|importer\s*of\s*record|buyer|seller|manufacturer)\s*[:#-]?\s*$`)
)

// maxPartyBlockLines bounds how many lines after the label a party block
// may span before the walk gives up (§4.5 step 3).
const maxPartyBlockLines = 12

// parsePartyBlock walks text starting at offset start (immediately after a
// party label match) line by line until a blank line, a new label
// pattern, or a country-start line, decomposing the block into a Party
// (§4.5 step 3). It returns the parsed party and the byte offset one past
// the last line consumed (for raw_span bookkeeping).
func parsePartyBlock(text string, start int) (*model.Party, int) {
	rest := text[start:]
	lines := splitLinesWithOffsets(rest)

	party := &model.Party{}
	consumedEnd := start
	var addressLines []string
	nameSet := false

	for i, ln := range lines {
		if i >= maxPartyBlockLines {
			break
		}
		trimmed := strings.TrimSpace(ln.text)
		if trimmed == "" {
			break
		}
		if partyLabelStop.MatchString(trimmed) {
			break
		}

		lineEnd := start + ln.end

		if cname, ok := country.MatchCountryName(trimmed); ok {
			party.Country = cname
			consumedEnd = lineEnd
			break
		}

		if m := partyPhoneRe.FindStringSubmatch(trimmed); m != nil {
			party.Phone = strings.TrimSpace(m[1])
			consumedEnd = lineEnd
			continue
		}
		if m := partyEmailRe.FindString(trimmed); m != "" {
			party.Email = m
			consumedEnd = lineEnd
			continue
		}
		if m := partyCityLine.FindStringSubmatch(trimmed); m != nil {
			party.City = strings.TrimSpace(m[1])
			party.State = strings.TrimSpace(m[2])
			party.PostalCode = strings.TrimSpace(m[3])
			consumedEnd = lineEnd
			continue
		}

		if !nameSet {
			party.Name = trimmed
			nameSet = true
		} else {
			addressLines = append(addressLines, trimmed)
		}
		consumedEnd = lineEnd
	}

	party.AddressLines = addressLines
	if !nameSet {
		return nil, start
	}
	return party, consumedEnd
}

type lineSpan struct {
	text string
	end  int
}

// splitLinesWithOffsets splits s into lines, recording each line's byte
// offset (exclusive end, i.e. up to but not including its trailing
// newline) relative to the start of s.
func splitLinesWithOffsets(s string) []lineSpan {
	var out []lineSpan
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, lineSpan{text: s[start:i], end: i})
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, lineSpan{text: s[start:], end: len(s)})
	}
	return out
}
