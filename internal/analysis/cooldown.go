package analysis

import (
	"time"

	"trade-insights/internal/journal"
)

// Cooldown grid: 0.25 to 30 minutes in quarter-minute steps.
const (
	cooldownGridSteps      = 120
	cooldownGridResolution = 0.25
	robustBandFraction     = 0.95
)

// CooldownResult is the dataset-wide outcome of the minimum-wait grid search.
type CooldownResult struct {
	Minutes        []float64 // sampled cooldown lengths
	TotalPnL       []float64 // total PnL under each cooldown
	OptimalMinutes float64
	OptimalPnL     float64
	RobustMin      float64 // band of cooldowns scoring >= 95% of the optimum
	RobustMax      float64
}

// OptimizeCooldown replays every day under each candidate cooldown: a trade
// counts only when enough time passed since the end of the last counted
// trade; skipped trades are excluded outright and do not reset the clock.
// The optimum is the cooldown with the highest summed PnL, smallest first on
// ties, together with the contiguous band of cooldowns whose PnL stays
// within 95% of it.
func OptimizeCooldown(days []journal.TradingDay) CooldownResult {
	result := CooldownResult{
		Minutes:  make([]float64, cooldownGridSteps),
		TotalPnL: make([]float64, cooldownGridSteps),
	}

	for i := 0; i < cooldownGridSteps; i++ {
		cooldown := cooldownGridResolution * float64(i+1)
		result.Minutes[i] = cooldown
		for _, day := range days {
			if len(day.Trades) < 2 {
				continue
			}
			result.TotalPnL[i] += dayPnLWithCooldown(day.SortedTrades(), cooldown)
		}
	}

	optIdx := 0
	for i, pnl := range result.TotalPnL {
		if pnl > result.TotalPnL[optIdx] {
			optIdx = i
		}
	}
	result.OptimalMinutes = result.Minutes[optIdx]
	result.OptimalPnL = result.TotalPnL[optIdx]

	lo, hi := robustBand(result.TotalPnL, optIdx)
	result.RobustMin = result.Minutes[lo]
	result.RobustMax = result.Minutes[hi]
	return result
}

// dayPnLWithCooldown sums the PnL of the trades a cooldown rule would have
// allowed within one day.
func dayPnLWithCooldown(sorted []journal.TradeRecord, cooldownMinutes float64) float64 {
	var pnl float64
	var lastEnd time.Time
	taken := false
	for _, t := range sorted {
		if taken && t.OpenTime.Sub(lastEnd).Minutes() < cooldownMinutes {
			continue
		}
		pnl += t.PnL
		lastEnd = t.EndTime()
		taken = true
	}
	return pnl
}

// robustBand grows a contiguous index range outward from the optimum while
// every included sample keeps at least 95% of the maximum PnL. The band
// always contains the optimum; with nothing else qualifying it collapses to
// that single point.
func robustBand(totals []float64, optIdx int) (lo, hi int) {
	threshold := totals[optIdx] * robustBandFraction
	lo, hi = optIdx, optIdx
	for lo > 0 && totals[lo-1] >= threshold {
		lo--
	}
	for hi < len(totals)-1 && totals[hi+1] >= threshold {
		hi++
	}
	return lo, hi
}
