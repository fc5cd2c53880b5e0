package analysis

import (
	"time"

	"trade-insights/internal/journal"
)

// DayPeak records where a day's cumulative PnL topped out.
type DayPeak struct {
	Date         string
	PeakTime     time.Time
	PeakPnL      float64
	TradesToPeak int // 1-based index of the last trade that set the maximum
}

// TrackPeaks walks each day in open-time order accumulating PnL and records
// the running maximum. Ties overwrite earlier entries, so TradesToPeak points
// at the last trade achieving the maximum. A single-trade day still yields a
// peak.
func TrackPeaks(days []journal.TradingDay) []DayPeak {
	var peaks []DayPeak
	for _, day := range days {
		if len(day.Trades) == 0 {
			continue
		}
		sorted := day.SortedTrades()

		var cumulative, peak float64
		var peakTime time.Time
		tradesToPeak := 0
		for i, t := range sorted {
			cumulative += t.PnL
			if tradesToPeak == 0 || cumulative >= peak {
				peak = cumulative
				peakTime = t.OpenTime
				tradesToPeak = i + 1
			}
		}

		peaks = append(peaks, DayPeak{
			Date:         day.Date,
			PeakTime:     peakTime,
			PeakPnL:      peak,
			TradesToPeak: tradesToPeak,
		})
	}
	return peaks
}
