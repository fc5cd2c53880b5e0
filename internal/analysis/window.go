package analysis

import (
	"sort"
	"time"

	"trade-insights/internal/journal"
)

// rollingPoints is how many neighbours (in time-distance order) feed the
// smoothed win-rate curve.
const rollingPoints = 20

// WindowSample is one fixed-width intraday window with at least one trade.
type WindowSample struct {
	Date            string
	WindowStart     time.Time
	WindowEnd       time.Time
	Trades          int
	WinRate         float64 // percent
	AvgPnL          float64
	TotalVolume     float64
	AvgTimeDistance float64 // minutes; 0 with fewer than 2 trades
}

// SampleWindows slides a widthMinutes window over each day in one-minute
// steps, from the first trade until the window end passes the last trade.
// Trades are gathered on [start, end); empty windows are not emitted.
func SampleWindows(days []journal.TradingDay, widthMinutes int) []WindowSample {
	width := time.Duration(widthMinutes) * time.Minute
	var samples []WindowSample
	for _, day := range days {
		if len(day.Trades) < 2 {
			continue
		}
		sorted := day.SortedTrades()
		dayEnd := sorted[len(sorted)-1].OpenTime

		for start := sorted[0].OpenTime; !start.Add(width).After(dayEnd); start = start.Add(time.Minute) {
			end := start.Add(width)
			var window []journal.TradeRecord
			for _, t := range sorted {
				if !t.OpenTime.Before(start) && t.OpenTime.Before(end) {
					window = append(window, t)
				}
			}
			if len(window) == 0 {
				continue
			}
			samples = append(samples, summarizeWindow(day.Date, start, end, window))
		}
	}
	return samples
}

func summarizeWindow(date string, start, end time.Time, window []journal.TradeRecord) WindowSample {
	sample := WindowSample{
		Date:        date,
		WindowStart: start,
		WindowEnd:   end,
		Trades:      len(window),
	}

	wins := 0
	for _, t := range window {
		sample.AvgPnL += t.PnL
		sample.TotalVolume += t.Volume
		if t.PnL > 0 {
			wins++
		}
	}
	sample.AvgPnL /= float64(len(window))
	sample.WinRate = float64(wins) / float64(len(window)) * 100

	if len(window) > 1 {
		var total float64
		for i := 1; i < len(window); i++ {
			total += window[i].OpenTime.Sub(window[i-1].OpenTime).Minutes()
		}
		sample.AvgTimeDistance = total / float64(len(window)-1)
	}
	return sample
}

// WinRateCurve relates win rate to the pace of trading. RollingWinRate is a
// trailing mean over the nearest rollingPoints samples after sorting by
// average time distance, so the curve tracks pace, not wall-clock time.
type WinRateCurve struct {
	TimeDistance       []float64 `json:"time_distance"`
	WinRate            []float64 `json:"win_rate"`
	TimeDistanceSorted []float64 `json:"time_distance_sorted"`
	RollingWinRate     []float64 `json:"rolling_win_rate"`
}

// SmoothWinRate builds the win-rate-vs-time-distance curve from window
// samples. Samples without an intra-window distance (fewer than 2 trades)
// carry no pace information and are excluded.
func SmoothWinRate(samples []WindowSample) WinRateCurve {
	curve := WinRateCurve{
		TimeDistance:       []float64{},
		WinRate:            []float64{},
		TimeDistanceSorted: []float64{},
		RollingWinRate:     []float64{},
	}

	type point struct{ distance, winRate float64 }
	var points []point
	for _, s := range samples {
		if s.AvgTimeDistance <= 0 {
			continue
		}
		curve.TimeDistance = append(curve.TimeDistance, s.AvgTimeDistance)
		curve.WinRate = append(curve.WinRate, s.WinRate)
		points = append(points, point{s.AvgTimeDistance, s.WinRate})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].distance < points[j].distance })

	var sum float64
	for i, p := range points {
		curve.TimeDistanceSorted = append(curve.TimeDistanceSorted, p.distance)
		sum += p.winRate
		if i >= rollingPoints {
			sum -= points[i-rollingPoints].winRate
		}
		n := i + 1
		if n > rollingPoints {
			n = rollingPoints
		}
		curve.RollingWinRate = append(curve.RollingWinRate, sum/float64(n))
	}
	return curve
}
