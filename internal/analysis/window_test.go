package analysis

import (
	"math"
	"testing"

	"trade-insights/internal/journal"
)

func TestSampleWindows(t *testing.T) {
	// Trades at 16:00 (+10), 16:05 (-5), 16:20 (+8). With a 15-minute
	// window the start slides from 16:00 to 16:05 inclusive.
	day := tradesAt(t, "04.03.2024", "16:00:00", 5, 10, -5)
	late, _ := journal.ParseTimestamp("04.03.2024 16:20:00")
	day.Trades = append(day.Trades, journal.TradeRecord{OpenTime: late, PnL: 8, Volume: 1})

	samples := SampleWindows([]journal.TradingDay{day}, 15)
	if len(samples) != 6 {
		t.Fatalf("expected 6 non-empty windows, got %d", len(samples))
	}

	first := samples[0]
	if first.Trades != 2 {
		t.Fatalf("expected 2 trades in the first window, got %d", first.Trades)
	}
	if first.WinRate != 50 {
		t.Errorf("expected win rate 50, got %f", first.WinRate)
	}
	if first.AvgPnL != 2.5 {
		t.Errorf("expected avg PnL 2.5, got %f", first.AvgPnL)
	}
	if first.AvgTimeDistance != 5 {
		t.Errorf("expected avg distance 5, got %f", first.AvgTimeDistance)
	}

	// The remaining windows catch only the 16:05 trade.
	for _, s := range samples[1:] {
		if s.Trades != 1 {
			t.Errorf("expected single-trade window, got %d", s.Trades)
		}
		if s.AvgTimeDistance != 0 {
			t.Errorf("expected no distance for single-trade window, got %f", s.AvgTimeDistance)
		}
	}
}

func TestSampleWindowsHalfOpenBounds(t *testing.T) {
	// A trade exactly at the window end must not be included.
	day := tradesAt(t, "04.03.2024", "16:00:00", 15, 1, 2, 3)
	samples := SampleWindows([]journal.TradingDay{day}, 15)
	// With 15-minute spacing equal to the width, no window can hold two
	// trades unless the end bound were inclusive.
	for _, s := range samples {
		if s.Trades != 1 {
			t.Errorf("window %s captured %d trades, bounds are half-open", s.WindowStart, s.Trades)
		}
	}
}

func TestSampleWindowsSkipsShortDays(t *testing.T) {
	days := []journal.TradingDay{tradesAt(t, "04.03.2024", "16:00:00", 10, 5)}
	if samples := SampleWindows(days, 15); len(samples) != 0 {
		t.Errorf("expected no samples from a single-trade day, got %d", len(samples))
	}
}

func TestSmoothWinRateFiltersAndSorts(t *testing.T) {
	samples := []WindowSample{
		{AvgTimeDistance: 3, WinRate: 60},
		{AvgTimeDistance: 0, WinRate: 100}, // no pace information
		{AvgTimeDistance: 1, WinRate: 20},
		{AvgTimeDistance: 2, WinRate: 40},
	}
	curve := SmoothWinRate(samples)

	if len(curve.TimeDistance) != 3 {
		t.Fatalf("expected 3 usable samples, got %d", len(curve.TimeDistance))
	}
	want := []float64{1, 2, 3}
	for i, d := range curve.TimeDistanceSorted {
		if d != want[i] {
			t.Errorf("sorted distance %d: expected %f, got %f", i, want[i], d)
		}
	}

	// Trailing mean with fewer points than the window uses what is there.
	wantRolling := []float64{20, 30, 40}
	for i, r := range curve.RollingWinRate {
		if math.Abs(r-wantRolling[i]) > 1e-9 {
			t.Errorf("rolling %d: expected %f, got %f", i, wantRolling[i], r)
		}
	}
}

func TestSmoothWinRateEmptyInput(t *testing.T) {
	curve := SmoothWinRate(nil)
	if curve.TimeDistance == nil || curve.RollingWinRate == nil {
		t.Error("expected empty slices, not nil, for JSON encoding")
	}
}
