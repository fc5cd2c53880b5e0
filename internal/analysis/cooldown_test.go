package analysis

import (
	"testing"

	"trade-insights/internal/journal"
)

func TestOptimizeCooldownGridShape(t *testing.T) {
	result := OptimizeCooldown(twoDayFixture(t))
	if len(result.Minutes) != 120 || len(result.TotalPnL) != 120 {
		t.Fatalf("expected 120 grid points, got %d/%d", len(result.Minutes), len(result.TotalPnL))
	}
	if result.Minutes[0] != 0.25 {
		t.Errorf("expected grid to start at 0.25, got %f", result.Minutes[0])
	}
	if result.Minutes[119] != 30 {
		t.Errorf("expected grid to end at 30, got %f", result.Minutes[119])
	}
}

func TestOptimizeCooldownSkipsLoser(t *testing.T) {
	// Two trades one minute apart; the second loses. Any cooldown longer
	// than the gap skips it and improves the day.
	days := []journal.TradingDay{tradesAt(t, "04.03.2024", "16:00:00", 1, 10, -5)}
	result := OptimizeCooldown(days)

	if result.OptimalPnL != 10 {
		t.Errorf("expected optimal PnL 10, got %f", result.OptimalPnL)
	}
	// 1.0 still admits the trade (the gap is not shorter than the
	// cooldown); 1.25 is the first grid point that skips it.
	if result.OptimalMinutes != 1.25 {
		t.Errorf("expected optimal cooldown 1.25, got %f", result.OptimalMinutes)
	}
	if result.RobustMin != 1.25 {
		t.Errorf("expected robust band to start at 1.25, got %f", result.RobustMin)
	}
	if result.RobustMax != 30 {
		t.Errorf("expected robust band to reach 30, got %f", result.RobustMax)
	}
}

func TestDayPnLWithCooldownSkipDoesNotResetClock(t *testing.T) {
	// Trades at 0, 2 and 4 minutes. With a 3-minute cooldown the second
	// trade is skipped outright, so the third (4 minutes after the first)
	// still counts.
	day := tradesAt(t, "04.03.2024", "16:00:00", 2, 10, -100, 7)
	pnl := dayPnLWithCooldown(day.SortedTrades(), 3)
	if pnl != 17 {
		t.Errorf("expected 17 with the middle trade skipped, got %f", pnl)
	}
}

func TestDayPnLWithCooldownUsesCloseTime(t *testing.T) {
	open1, _ := journal.ParseTimestamp("04.03.2024 16:00:00")
	close1, _ := journal.ParseTimestamp("04.03.2024 16:05:00")
	open2, _ := journal.ParseTimestamp("04.03.2024 16:06:00")
	trades := []journal.TradeRecord{
		{OpenTime: open1, CloseTime: close1, PnL: 10},
		{OpenTime: open2, PnL: 5},
	}
	// The second trade opens 6 minutes after the first opened but only 1
	// minute after it closed, so a 2-minute cooldown rejects it.
	if pnl := dayPnLWithCooldown(trades, 2); pnl != 10 {
		t.Errorf("expected 10 when measuring from close time, got %f", pnl)
	}
	if pnl := dayPnLWithCooldown(trades, 0.5); pnl != 15 {
		t.Errorf("expected 15 with a short cooldown, got %f", pnl)
	}
}

func TestRobustBandContiguous(t *testing.T) {
	// A qualifying sample separated from the optimum by a gap must not
	// stretch the band across the gap.
	totals := []float64{100, 10, 96, 100, 97, 10, 98}
	lo, hi := robustBand(totals, 3)
	if lo != 2 || hi != 4 {
		t.Errorf("expected band [2,4], got [%d,%d]", lo, hi)
	}
}

func TestRobustBandSinglePoint(t *testing.T) {
	totals := []float64{1, 50, 1}
	lo, hi := robustBand(totals, 1)
	if lo != 1 || hi != 1 {
		t.Errorf("expected band to collapse to the optimum, got [%d,%d]", lo, hi)
	}
}
