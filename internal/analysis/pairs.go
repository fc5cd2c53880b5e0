// Package analysis holds the per-day and dataset-wide computations over
// grouped journal records: consecutive-trade correlation, cumulative-PnL
// peaks, drawdown and cooldown grid searches, and sliding-window sampling.
// Every function takes the immutable day groups and returns fresh values.
package analysis

import (
	"trade-insights/internal/journal"
)

// TradePair captures the relation between two adjacent trades in a day:
// how long the trader waited and what the second trade did.
type TradePair struct {
	Date         string
	TimeDistance float64 // minutes between the two open times
	PnL          float64 // of the later trade
	Volume       float64 // of the later trade
	Win          int     // 1 when the later trade closed positive
}

// CorrelatePairs emits one pair per adjacent trade couple within each day,
// ordered by open time. Pairs with a non-positive gap are dropped; they come
// from duplicate or out-of-order timestamps and would poison the distance
// statistics.
func CorrelatePairs(days []journal.TradingDay) []TradePair {
	var pairs []TradePair
	for _, day := range days {
		if len(day.Trades) < 2 {
			continue
		}
		sorted := day.SortedTrades()
		for i := 1; i < len(sorted); i++ {
			distance := sorted[i].OpenTime.Sub(sorted[i-1].OpenTime).Minutes()
			if distance <= 0 {
				continue
			}
			win := 0
			if sorted[i].PnL > 0 {
				win = 1
			}
			pairs = append(pairs, TradePair{
				Date:         day.Date,
				TimeDistance: distance,
				PnL:          sorted[i].PnL,
				Volume:       sorted[i].Volume,
				Win:          win,
			})
		}
	}
	return pairs
}
