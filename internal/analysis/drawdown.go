package analysis

import (
	"trade-insights/internal/journal"
)

// Drawdown threshold grid: 5% to 100% of the day's running peak, 5% steps.
const (
	drawdownGridStart = 5.0
	drawdownGridEnd   = 100.0
	drawdownGridStep  = 5.0
)

// DrawdownResult is the outcome of the per-day stop-loss grid search.
type DrawdownResult struct {
	Date                string
	OptimalDrawdownPct  float64
	FinalPnLWithOptimal float64
	UnlimitedFinalPnL   float64
	TotalTrades         int
}

// DrawdownThresholds returns the shared threshold grid.
func DrawdownThresholds() []float64 {
	var grid []float64
	for pct := drawdownGridStart; pct <= drawdownGridEnd; pct += drawdownGridStep {
		grid = append(grid, pct)
	}
	return grid
}

// OptimizeDrawdown grid-searches, per day, the drawdown percentage at which
// stopping for the day would have maximized that day's PnL. Ties go to the
// smallest threshold: a tighter stop with the same outcome is the safer rule.
func OptimizeDrawdown(days []journal.TradingDay) []DrawdownResult {
	var results []DrawdownResult
	for _, day := range days {
		if len(day.Trades) < 2 {
			continue
		}
		sorted := day.SortedTrades()

		var unlimited float64
		for _, t := range sorted {
			unlimited += t.PnL
		}

		best := DrawdownResult{
			Date:              day.Date,
			UnlimitedFinalPnL: unlimited,
			TotalTrades:       len(sorted),
		}
		first := true
		for _, threshold := range DrawdownThresholds() {
			final := replayWithStop(sorted, threshold)
			if first || final > best.FinalPnLWithOptimal {
				best.OptimalDrawdownPct = threshold
				best.FinalPnLWithOptimal = final
				first = false
			}
		}
		results = append(results, best)
	}
	return results
}

// replayWithStop simulates a day under a drawdown stop: once the retracement
// from the running peak exceeds the threshold, the breaching trade is undone
// entirely and the rest of the day is skipped.
func replayWithStop(sorted []journal.TradeRecord, thresholdPct float64) float64 {
	var running, peak float64
	for _, t := range sorted {
		running += t.PnL
		if running > peak {
			peak = running
		}
		if peak > 0 {
			drawdown := (peak - running) / peak * 100
			if drawdown > thresholdPct {
				running -= t.PnL
				break
			}
		}
	}
	return running
}

// DrawdownCurve applies every threshold to every day and sums the resulting
// PnLs, producing the dataset-wide threshold-vs-PnL chart series.
func DrawdownCurve(days []journal.TradingDay) (thresholds, totals []float64) {
	thresholds = DrawdownThresholds()
	totals = make([]float64, len(thresholds))
	for i, threshold := range thresholds {
		for _, day := range days {
			if len(day.Trades) < 2 {
				continue
			}
			totals[i] += replayWithStop(day.SortedTrades(), threshold)
		}
	}
	return thresholds, totals
}
