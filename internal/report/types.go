package report

// Result is the full response body: chart-ready series under Data and
// recommendation records under Analysis.
type Result struct {
	Data     map[string]any  `json:"data"`
	Analysis Recommendations `json:"analysis"`
}

// Recommendations groups the per-topic recommendation records. A topic is
// omitted when its inputs were empty.
type Recommendations struct {
	OptimalBreakBetweenTrades *BreakRecommendation    `json:"optimal_break_between_trades,omitempty"`
	OptimalTradingHours       *HoursRecommendation    `json:"optimal_trading_hours,omitempty"`
	OptimalIntradayDrawdown   *DrawdownRecommendation `json:"optimal_intraday_drawdown,omitempty"`
	OptimalMaxTradesPerDay    *MaxTradesRecommendation `json:"optimal_max_trades_per_day,omitempty"`
	VolumeOptimization        *VolumeRecommendation   `json:"volume_optimization,omitempty"`
}

// BreakRecommendation suggests the pause to insert between trades.
type BreakRecommendation struct {
	Minutes            float64    `json:"minutes"`
	Seconds            float64    `json:"seconds"`
	RobustRangeMinutes [2]float64 `json:"robust_range_minutes"`
	PnLImprovement     float64    `json:"pnl_improvement"`
	VanillaPnL         float64    `json:"vanilla_pnl"`
	OptimalPnL         float64    `json:"optimal_pnl"`
	Explanation        string     `json:"explanation"`
	Robustness         string     `json:"robustness"`
	Confidence         string     `json:"confidence"`
}

// HoursRecommendation describes when cumulative PnL typically peaks.
type HoursRecommendation struct {
	AveragePeakTime      string    `json:"average_peak_time"`
	StdPeakHour          float64   `json:"std_peak_hour"`
	ConfidenceInterval95 [2]string `json:"confidence_interval_95"`
	SampleSize           int       `json:"sample_size"`
	ConsistencyRate      float64   `json:"consistency_rate"`
	Explanation          string    `json:"explanation"`
	Recommendation       string    `json:"recommendation"`
	Confidence           string    `json:"confidence"`
}

// DrawdownRecommendation suggests the intraday stop-loss threshold.
type DrawdownRecommendation struct {
	MedianPercentage     float64    `json:"median_percentage"`
	MeanPercentage       float64    `json:"mean_percentage"`
	StdPercentage        float64    `json:"std_percentage"`
	ConfidenceInterval95 [2]float64 `json:"confidence_interval_95"`
	SampleSize           int        `json:"sample_size"`
	ConsistencyRate      float64    `json:"consistency_rate"`
	Explanation          string     `json:"explanation"`
	Confidence           string     `json:"confidence"`
}

// MaxTradesRecommendation suggests a daily trade-count ceiling.
type MaxTradesRecommendation struct {
	MedianTradesToPeak      float64    `json:"median_trades_to_peak"`
	MeanTradesToPeak        float64    `json:"mean_trades_to_peak"`
	StdTradesToPeak         float64    `json:"std_trades_to_peak"`
	ConfidenceInterval95    [2]float64 `json:"confidence_interval_95"`
	CurrentAvgTradesPerDay  float64    `json:"current_avg_trades_per_day"`
	SampleSize              int        `json:"sample_size"`
	OptimalRate             float64    `json:"optimal_rate"`
	Recommendation          string     `json:"recommendation"`
	Explanation             string     `json:"explanation"`
	Confidence              string     `json:"confidence"`
}

// VolumeRecommendation carries correlation-based sizing guidance.
type VolumeRecommendation struct {
	VolumeTimeCorrelation  float64         `json:"volume_time_correlation"`
	SampleSize             int             `json:"sample_size"`
	RevengeTradingAnalysis RevengeAnalysis `json:"revenge_trading_analysis"`
	Explanation            string          `json:"explanation"`
	Recommendation         string          `json:"recommendation"`
	Confidence             string          `json:"confidence"`
}

// RevengeAnalysis flags high-volume trades entered shortly after the
// previous one.
type RevengeAnalysis struct {
	RevengeTradesCount        int     `json:"revenge_trades_count"`
	RevengeTradesPercentage   float64 `json:"revenge_trades_percentage"`
	RevengePnLMean            float64 `json:"revenge_pnl_mean"`
	NormalPnLMean             float64 `json:"normal_pnl_mean"`
	PnLDifference             float64 `json:"pnl_difference"`
	VolumeThreshold75th       float64 `json:"volume_threshold_75th"`
	TimeDistanceThreshold25th float64 `json:"time_distance_threshold_25th"`
}

// Chart series carried under Data.

type summarySeries struct {
	Rows           int    `json:"rows"`
	FilteredTrades int    `json:"filtered_trades"`
	NumDays        int    `json:"num_days"`
	DateRange      string `json:"date_range"`
}

type pnlScatterSeries struct {
	TimeDistanceMinutes []float64 `json:"time_distance_minutes"`
	PnL                 []float64 `json:"pnl"`
}

type volumeScatterSeries struct {
	TimeDistance []float64 `json:"time_distance"`
	Volume       []float64 `json:"volume"`
}

type peakTimesSeries struct {
	Time []string  `json:"time"`
	PnL  []float64 `json:"pnl"`
}

type tradesToPeakSeries struct {
	TradesToPeak []int `json:"trades_to_peak"`
}

type drawdownCurveSeries struct {
	DrawdownPercentages []float64 `json:"drawdown_percentages"`
	CumulativePnL       []float64 `json:"cumulative_pnl"`
}

type cooldownCurveSeries struct {
	CooldownMinutes []float64 `json:"cooldown_minutes"`
	CumulativePnL   []float64 `json:"cumulative_pnl"`
}

type binnedPnLSeries struct {
	TimeDistanceSeconds []float64 `json:"time_distance_seconds"`
	TotalPnL            []float64 `json:"total_pnl"`
}
