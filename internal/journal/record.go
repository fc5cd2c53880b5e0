// Package journal turns a raw trade-journal export into typed, per-day trade
// records: delimited-text parsing, session filtering and calendar-day
// grouping. All downstream analysis consumes its output and never mutates it.
package journal

import (
	"fmt"
	"sort"
	"time"
)

// timestampLayout is the journal export format: day first, dot separated.
const timestampLayout = "02.01.2006 15:04:05"

// TradeRecord is a single executed trade. Immutable once parsed.
type TradeRecord struct {
	OpenTime  time.Time
	CloseTime time.Time // zero when the export has no close time
	PnL       float64
	Volume    float64
}

// EndTime is the moment the trade stops occupying the trader: close time when
// known, open time otherwise.
func (t TradeRecord) EndTime() time.Time {
	if t.CloseTime.IsZero() {
		return t.OpenTime
	}
	return t.CloseTime
}

// ParseTimestamp parses a journal timestamp. The first numeric group is the
// day of month; a swapped day/month order is a malformed input, not a
// reinterpretation.
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q (want DD.MM.YYYY HH:mm:ss): %w", s, err)
	}
	return ts, nil
}

// TradingDay is all session-filtered trades sharing one calendar date, keyed
// by the ISO date of their open time.
type TradingDay struct {
	Date   string // YYYY-MM-DD
	Trades []TradeRecord
}

// SortedTrades returns a copy of the day's trades ordered by open time
// ascending. Grouping gives no ordering guarantee, so every consumer that
// needs order sorts for itself.
func (d TradingDay) SortedTrades() []TradeRecord {
	sorted := make([]TradeRecord, len(d.Trades))
	copy(sorted, d.Trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OpenTime.Before(sorted[j].OpenTime)
	})
	return sorted
}

// GroupByDay partitions records into per-calendar-day groups, dates derived
// from the open time. Days come back sorted by date so repeated runs produce
// identical output.
func GroupByDay(records []TradeRecord) []TradingDay {
	byDate := make(map[string][]TradeRecord)
	for _, r := range records {
		date := r.OpenTime.Format("2006-01-02")
		byDate[date] = append(byDate[date], r)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]TradingDay, 0, len(dates))
	for _, date := range dates {
		days = append(days, TradingDay{Date: date, Trades: byDate[date]})
	}
	return days
}
