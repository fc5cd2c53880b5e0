package analysis

import (
	"testing"
	"time"

	"trade-insights/internal/journal"
)

// tradesAt builds a day of trades starting at startClock on date, spaced
// stepMinutes apart, one per PnL value. Volume defaults to 1.
func tradesAt(t *testing.T, date, startClock string, stepMinutes int, pnls ...float64) journal.TradingDay {
	t.Helper()
	start, err := journal.ParseTimestamp(date + " " + startClock)
	if err != nil {
		t.Fatalf("bad fixture timestamp: %v", err)
	}
	day := journal.TradingDay{Date: start.Format("2006-01-02")}
	for i, pnl := range pnls {
		day.Trades = append(day.Trades, journal.TradeRecord{
			OpenTime: start.Add(time.Duration(i*stepMinutes) * time.Minute),
			PnL:      pnl,
			Volume:   1,
		})
	}
	return day
}

// twoDayFixture is the reference dataset used across the analysis tests:
// one day that recovers from an early dip and one day wrecked by its
// second trade.
func twoDayFixture(t *testing.T) []journal.TradingDay {
	t.Helper()
	return []journal.TradingDay{
		tradesAt(t, "04.03.2024", "16:00:00", 10, 10, -5, 15, 8, -3, 12),
		tradesAt(t, "05.03.2024", "16:00:00", 10, 7, -8, 20, 5),
	}
}
