// Package report aggregates the per-day analysis outputs into dataset-level
// recommendations and chart-ready series. It is the single join point of the
// pipeline; everything it consumes is already computed and immutable.
package report

import (
	"fmt"
	"math"
	"sort"

	"trade-insights/internal/analysis"
	"trade-insights/internal/journal"
)

// tCritical is the fixed critical value used for the trades-to-peak
// confidence interval regardless of sample size. Kept for compatibility
// with historical reports.
const tCritical = 2.045

// scatterCutoffQuantile trims the long tail of time distances from the
// scatter series so the charts stay readable.
const scatterCutoffQuantile = 0.97

// Input bundles everything the assembler consumes.
type Input struct {
	WindowMinutes      int
	Rows               int
	FilteredTrades     int
	Days               []journal.TradingDay
	Pairs              []analysis.TradePair
	Peaks              []analysis.DayPeak
	Drawdowns          []analysis.DrawdownResult
	DrawdownThresholds []float64
	DrawdownTotals     []float64
	Cooldown           analysis.CooldownResult
	WinRateCurve       analysis.WinRateCurve
}

// Build assembles the final result from the analysis outputs.
func Build(in Input) *Result {
	result := &Result{Data: map[string]any{}}

	result.Data["summary"] = buildSummary(in)
	buildPairSeries(result.Data, in.Pairs)
	buildPeakSeries(result.Data, in.Peaks)
	result.Data["cumulative_pnl_vs_drawdown_threshold"] = drawdownCurveSeries{
		DrawdownPercentages: in.DrawdownThresholds,
		CumulativePnL:       in.DrawdownTotals,
	}
	result.Data["cumulative_pnl_vs_cooldown_period"] = cooldownCurveSeries{
		CooldownMinutes: in.Cooldown.Minutes,
		CumulativePnL:   in.Cooldown.TotalPnL,
	}
	result.Data[fmt.Sprintf("win_rate_vs_avg_time_distance_over_%dm_window", in.WindowMinutes)] = in.WinRateCurve

	vanilla := vanillaPnL(in.Days)
	result.Analysis.OptimalBreakBetweenTrades = buildBreakRecommendation(in.Cooldown, vanilla)
	result.Analysis.OptimalTradingHours = buildHoursRecommendation(in.Peaks)
	result.Analysis.OptimalIntradayDrawdown = buildDrawdownRecommendation(in.Drawdowns)
	result.Analysis.OptimalMaxTradesPerDay = buildMaxTradesRecommendation(in.Peaks, in.Days)
	result.Analysis.VolumeOptimization = buildVolumeRecommendation(in.Pairs)

	return result
}

func buildSummary(in Input) summarySeries {
	dateRange := "N/A"
	if len(in.Days) > 0 {
		dateRange = in.Days[0].Date + " to " + in.Days[len(in.Days)-1].Date
	}
	return summarySeries{
		Rows:           in.Rows,
		FilteredTrades: in.FilteredTrades,
		NumDays:        len(in.Days),
		DateRange:      dateRange,
	}
}

// vanillaPnL is the baseline: every analyzed day's full PnL with no rule
// applied, over the same day population the optimizers replay.
func vanillaPnL(days []journal.TradingDay) float64 {
	var total float64
	for _, day := range days {
		if len(day.Trades) < 2 {
			continue
		}
		for _, t := range day.Trades {
			total += t.PnL
		}
	}
	return total
}

func buildPairSeries(data map[string]any, pairs []analysis.TradePair) {
	distances := make([]float64, len(pairs))
	for i, p := range pairs {
		distances[i] = p.TimeDistance
	}

	// Scatter series drop the top 3% of time distances.
	cutoff := interpQuantile(distances, scatterCutoffQuantile)
	pnlSeries := pnlScatterSeries{TimeDistanceMinutes: []float64{}, PnL: []float64{}}
	volSeries := volumeScatterSeries{TimeDistance: []float64{}, Volume: []float64{}}
	for _, p := range pairs {
		if p.TimeDistance > cutoff {
			continue
		}
		pnlSeries.TimeDistanceMinutes = append(pnlSeries.TimeDistanceMinutes, p.TimeDistance)
		pnlSeries.PnL = append(pnlSeries.PnL, p.PnL)
		volSeries.TimeDistance = append(volSeries.TimeDistance, p.TimeDistance)
		volSeries.Volume = append(volSeries.Volume, p.Volume)
	}
	data["pnl_vs_time_distance"] = pnlSeries
	data["volume_vs_time_distance"] = volSeries
	data["total_pnl_by_time_distance_bin"] = binPnLByTimeDistance(pairs)
}

// binPnLByTimeDistance sums pair PnL into 15-second time-distance bins,
// emitting only bins that saw trades.
func binPnLByTimeDistance(pairs []analysis.TradePair) binnedPnLSeries {
	const binSeconds = 15.0
	sums := make(map[int]float64)
	for _, p := range pairs {
		bin := int(p.TimeDistance * 60 / binSeconds)
		sums[bin] += p.PnL
	}

	bins := make([]int, 0, len(sums))
	for bin := range sums {
		bins = append(bins, bin)
	}
	sort.Ints(bins)

	series := binnedPnLSeries{TimeDistanceSeconds: []float64{}, TotalPnL: []float64{}}
	for _, bin := range bins {
		series.TimeDistanceSeconds = append(series.TimeDistanceSeconds, float64(bin)*binSeconds)
		series.TotalPnL = append(series.TotalPnL, sums[bin])
	}
	return series
}

func buildPeakSeries(data map[string]any, peaks []analysis.DayPeak) {
	times := peakTimesSeries{Time: []string{}, PnL: []float64{}}
	dist := tradesToPeakSeries{TradesToPeak: []int{}}
	for _, p := range peaks {
		times.Time = append(times.Time, p.PeakTime.Format("15:04"))
		times.PnL = append(times.PnL, p.PeakPnL)
		dist.TradesToPeak = append(dist.TradesToPeak, p.TradesToPeak)
	}
	data["distribution_of_peak_pnl_times"] = times
	data["distribution_of_trades_to_peak"] = dist
}

func buildBreakRecommendation(cd analysis.CooldownResult, vanilla float64) *BreakRecommendation {
	if len(cd.Minutes) == 0 {
		return nil
	}
	return &BreakRecommendation{
		Minutes:            cd.OptimalMinutes,
		Seconds:            cd.OptimalMinutes * 60,
		RobustRangeMinutes: [2]float64{cd.RobustMin, cd.RobustMax},
		PnLImprovement:     cd.OptimalPnL - vanilla,
		VanillaPnL:         vanilla,
		OptimalPnL:         cd.OptimalPnL,
		Explanation: fmt.Sprintf(
			"Waiting %.1f minutes between trades maximizes cumulative P&L", cd.OptimalMinutes),
		Robustness: fmt.Sprintf(
			"Cooldown periods between %.1f-%.1f minutes achieve >95%% of maximum P&L",
			cd.RobustMin, cd.RobustMax),
		Confidence: "High - based on systematic analysis across all cooldown periods",
	}
}

func buildHoursRecommendation(peaks []analysis.DayPeak) *HoursRecommendation {
	if len(peaks) == 0 {
		return nil
	}
	hours := make([]float64, len(peaks))
	for i, p := range peaks {
		hours[i] = float64(p.PeakTime.Hour()) + float64(p.PeakTime.Minute())/60
	}
	avg := mean(hours)
	std := popStdDev(hours)

	consistency := shareWithin(hours, avg, 1)
	return &HoursRecommendation{
		AveragePeakTime: formatClock(avg),
		StdPeakHour:     std,
		ConfidenceInterval95: [2]string{
			formatClock(avg - 2*std),
			formatClock(avg + 2*std),
		},
		SampleSize:      len(peaks),
		ConsistencyRate: consistency,
		Explanation: fmt.Sprintf(
			"Peak cumulative P&L typically occurs around %s, so focus trading activity around that time",
			formatClock(avg)),
		Recommendation: "Focus trading activity in the hours leading up to the typical peak time",
		Confidence:     confidenceLabel(consistency, "had their peak within 1 hour of the average"),
	}
}

func buildDrawdownRecommendation(drawdowns []analysis.DrawdownResult) *DrawdownRecommendation {
	if len(drawdowns) == 0 {
		return nil
	}
	thresholds := make([]float64, len(drawdowns))
	for i, d := range drawdowns {
		thresholds[i] = d.OptimalDrawdownPct
	}

	med := median(thresholds)
	consistency := shareWithin(thresholds, med, 5)
	return &DrawdownRecommendation{
		MedianPercentage: med,
		MeanPercentage:   mean(thresholds),
		StdPercentage:    popStdDev(thresholds),
		ConfidenceInterval95: [2]float64{
			percentile(thresholds, 0.025),
			percentile(thresholds, 0.975),
		},
		SampleSize:      len(drawdowns),
		ConsistencyRate: consistency,
		Explanation: fmt.Sprintf(
			"Stop trading when daily drawdown reaches %.1f%% of the day's peak P&L", med),
		Confidence: confidenceLabel(consistency, "had their optimal threshold within 5 points of the median"),
	}
}

func buildMaxTradesRecommendation(peaks []analysis.DayPeak, days []journal.TradingDay) *MaxTradesRecommendation {
	if len(peaks) == 0 {
		return nil
	}
	counts := make([]float64, len(peaks))
	for i, p := range peaks {
		counts[i] = float64(p.TradesToPeak)
	}
	med := median(counts)
	avg := mean(counts)
	std := popStdDev(counts)

	ciHalf := 0.0
	if n := len(counts); n > 1 {
		ciHalf = tCritical * std / math.Sqrt(float64(n))
	}

	totalTrades := 0
	for _, day := range days {
		totalTrades += len(day.Trades)
	}
	avgPerDay := 0.0
	if len(days) > 0 {
		avgPerDay = float64(totalTrades) / float64(len(days))
	}

	optimalRate := shareWithin(counts, med, 2)
	return &MaxTradesRecommendation{
		MedianTradesToPeak:     med,
		MeanTradesToPeak:       avg,
		StdTradesToPeak:        std,
		ConfidenceInterval95:   [2]float64{avg - ciHalf, avg + ciHalf},
		CurrentAvgTradesPerDay: avgPerDay,
		SampleSize:             len(peaks),
		OptimalRate:            optimalRate,
		Recommendation: fmt.Sprintf(
			"Consider limiting to %.0f trades per day, the median number of trades needed to reach peak P&L", med),
		Explanation: "Based on when cumulative P&L typically peaks during trading days",
		Confidence:  confidenceLabel(optimalRate, "peaked within 2 trades of the recommendation"),
	}
}

func buildVolumeRecommendation(pairs []analysis.TradePair) *VolumeRecommendation {
	if len(pairs) == 0 {
		return nil
	}
	distances := make([]float64, len(pairs))
	volumes := make([]float64, len(pairs))
	for i, p := range pairs {
		distances[i] = p.TimeDistance
		volumes[i] = p.Volume
	}
	correlation := pearson(distances, volumes)

	revenge := analyzeRevengeTrading(pairs, distances, volumes)
	return &VolumeRecommendation{
		VolumeTimeCorrelation:  correlation,
		SampleSize:             len(pairs),
		RevengeTradingAnalysis: revenge,
		Explanation: fmt.Sprintf(
			"Volume and time distance correlation: %.4f. %.1f%% of trades show potential revenge trading patterns (high volume + low time distance)",
			correlation, revenge.RevengeTradesPercentage),
		Recommendation: fmt.Sprintf(
			"Consider reducing position size when re-entering within %.1f minutes of the previous trade",
			revenge.TimeDistanceThreshold25th),
		Confidence: fmt.Sprintf("Based on %d trade observations", len(pairs)),
	}
}

// analyzeRevengeTrading flags pairs combining top-quartile volume with
// bottom-quartile time distance and compares their PnL against the rest.
func analyzeRevengeTrading(pairs []analysis.TradePair, distances, volumes []float64) RevengeAnalysis {
	volumeHigh := interpQuantile(volumes, 0.75)
	distanceLow := interpQuantile(distances, 0.25)

	var revengePnL, normalPnL []float64
	for _, p := range pairs {
		if p.Volume >= volumeHigh && p.TimeDistance <= distanceLow {
			revengePnL = append(revengePnL, p.PnL)
		} else {
			normalPnL = append(normalPnL, p.PnL)
		}
	}

	ra := RevengeAnalysis{
		RevengeTradesCount:        len(revengePnL),
		RevengeTradesPercentage:   float64(len(revengePnL)) / float64(len(pairs)) * 100,
		RevengePnLMean:            mean(revengePnL),
		NormalPnLMean:             mean(normalPnL),
		VolumeThreshold75th:       volumeHigh,
		TimeDistanceThreshold25th: distanceLow,
	}
	ra.PnLDifference = ra.RevengePnLMean - ra.NormalPnLMean
	return ra
}
