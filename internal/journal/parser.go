package journal

import (
	"fmt"
	"strconv"
	"strings"
)

// Column names recognized in the header row.
const (
	colOpenTime  = "Open time"
	colCloseTime = "Close time"
	colPnL       = "PnL"
	colTicks     = "Profit (ticks)"
	colVolume    = "Open volume"
)

// ParseJournal parses raw delimited journal text into trade records. The
// first line is the header and must contain the "Open time" column. Rows
// without a parseable open time are dropped silently; rows beyond maxRows
// reject the whole file.
func ParseJournal(text string, maxRows int) ([]TradeRecord, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, &SchemaError{Reason: "file must contain a header row and at least one data row"}
	}
	if maxRows > 0 && len(lines)-1 > maxRows {
		return nil, &SchemaError{Reason: fmt.Sprintf("file has %d rows, maximum is %d", len(lines)-1, maxRows)}
	}

	header := splitDelimited(strings.TrimPrefix(lines[0], "\uFEFF"))
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	openIdx, ok := cols[colOpenTime]
	if !ok {
		return nil, &SchemaError{Reason: "mandatory column 'Open time' is missing"}
	}

	records := make([]TradeRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitDelimited(line)

		openRaw := fieldAt(fields, openIdx)
		if openRaw == "" {
			continue
		}
		openTime, err := ParseTimestamp(openRaw)
		if err != nil {
			continue
		}

		rec := TradeRecord{OpenTime: openTime, Volume: 1}

		if idx, ok := cols[colCloseTime]; ok {
			if closeTime, err := ParseTimestamp(fieldAt(fields, idx)); err == nil {
				rec.CloseTime = closeTime
			}
		}

		rec.PnL = parsePnL(fields, cols)

		if idx, ok := cols[colVolume]; ok {
			if v, err := strconv.ParseFloat(fieldAt(fields, idx), 64); err == nil {
				if v < 0 {
					v = -v
				}
				rec.Volume = v
			}
		}

		records = append(records, rec)
	}
	return records, nil
}

// parsePnL resolves the trade's profit: the PnL column when present and
// numeric, the tick profit as fallback, zero otherwise.
func parsePnL(fields []string, cols map[string]int) float64 {
	if idx, ok := cols[colPnL]; ok {
		if v, err := strconv.ParseFloat(fieldAt(fields, idx), 64); err == nil {
			return v
		}
	}
	if idx, ok := cols[colTicks]; ok {
		if v, err := strconv.ParseFloat(fieldAt(fields, idx), 64); err == nil {
			return v
		}
	}
	return 0
}

// splitDelimited splits one line on commas, honoring quoted fields: a quote
// toggles the inside-field state so a comma inside quotes is not a split
// point.
func splitDelimited(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, b.String())
	return fields
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}
