package schema

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/validate"
)

// cellSplitRe delimits table cells by two-or-more spaces, a tab, or a
// pipe, since header_patterns only locate the header row; the actual
// column boundaries are inferred from whatever delimiter the body rows
// use (§4.5 step 4).
var cellSplitRe = regexp.MustCompile(`\s{2,}|\t|\|`)

// maxTableBodyLines bounds how many rows after the header a table may
// span before the walk gives up.
const maxTableBodyLines = 200

// extractTables runs each declared table definition against text,
// returning rows keyed by column name (§4.5 step 4).
func extractTables(tables []Table, text string) map[string][]map[string]*model.FieldRecord {
	out := make(map[string][]map[string]*model.FieldRecord)
	for _, t := range tables {
		rows := extractTable(t, text)
		if len(rows) > 0 {
			out[t.Name] = rows
		}
	}
	return out
}

func extractTable(t Table, text string) []map[string]*model.FieldRecord {
	headerEnd := -1
	for _, hp := range t.HeaderPatterns {
		loc := hp.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if headerEnd == -1 || loc[1] < headerEnd {
			headerEnd = loc[1]
		}
	}
	if headerEnd == -1 {
		return nil
	}

	// Advance to the start of the line following the header match.
	nlIdx := strings.IndexByte(text[headerEnd:], '\n')
	if nlIdx == -1 {
		return nil
	}
	bodyStart := headerEnd + nlIdx + 1

	lines := splitLinesWithOffsets(text[bodyStart:])
	var rows []map[string]*model.FieldRecord
	for i, ln := range lines {
		if i >= maxTableBodyLines {
			break
		}
		trimmed := strings.TrimSpace(ln.text)
		if trimmed == "" {
			break
		}
		cells := cellSplitRe.Split(trimmed, -1)
		row := make(map[string]*model.FieldRecord)
		for ci, col := range t.Columns {
			if ci >= len(cells) {
				continue
			}
			cellText := strings.TrimSpace(cells[ci])
			if cellText == "" {
				continue
			}
			value, ok := columnValue(col, cellText)
			if !ok {
				continue
			}
			lineOffset := bodyStart + ln.end - len(ln.text)
			cellOffset := strings.Index(ln.text, cells[ci])
			spanStart := lineOffset
			if cellOffset >= 0 {
				spanStart = lineOffset + cellOffset
			}
			row[col.Name] = &model.FieldRecord{
				Kind:       col.Kind,
				Value:      value,
				RawSpan:    cellText,
				Confidence: 80,
				Method:     model.MethodSchemaTable,
				PatternID:  "table:" + t.Name + ":" + col.Name,
				SpanStart:  spanStart,
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// columnValue validates and normalizes a table cell according to its
// column's declared kind, reusing C2's validators (§4.5 step 4, step 5).
func columnValue(col Column, cell string) (model.FieldValue, bool) {
	switch col.Kind {
	case model.KindContainerNumber:
		if !validate.IsContainerNumber(cell) {
			return model.FieldValue{}, false
		}
		return model.FieldValue{Text: validate.NormalizeContainerNumber(cell)}, true
	case model.KindSealNumber:
		if !validate.IsNotContainerOwnerCode(cell) || !validate.IsNotStopWord(cell) {
			return model.FieldValue{}, false
		}
		return model.FieldValue{Text: strings.ToUpper(cell)}, true
	case model.KindGrossWeight, model.KindNetWeight:
		kg, ok := validate.ValidateWeight(strings.ReplaceAll(cell, ",", ""), "")
		if !ok {
			return model.FieldValue{}, false
		}
		return model.FieldValue{Number: kg, HasNumber: true}, true
	case model.KindVolume:
		cbm, ok := validate.ValidateVolume(strings.ReplaceAll(cell, ",", ""), "")
		if !ok {
			return model.FieldValue{}, false
		}
		return model.FieldValue{Number: cbm, HasNumber: true}, true
	case model.KindPackageCount:
		n, err := strconv.Atoi(strings.ReplaceAll(cell, ",", ""))
		if err != nil || n < 0 {
			return model.FieldValue{}, false
		}
		return model.FieldValue{Number: float64(n), HasNumber: true}, true
	default:
		if !validate.IsNotStopWord(cell) {
			return model.FieldValue{}, false
		}
		return model.FieldValue{Text: cell}, true
	}
}
