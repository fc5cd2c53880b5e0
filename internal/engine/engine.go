// Package engine runs the full analysis pipeline over one journal upload:
// parse, filter, group, fan the independent analyses out and assemble the
// report.
package engine

import (
	"context"
	"sync"

	"trade-insights/internal/analysis"
	"trade-insights/internal/journal"
	"trade-insights/internal/logger"
	"trade-insights/internal/report"
	"trade-insights/internal/store"
)

// Engine owns the analysis parameters for the lifetime of the process.
type Engine struct {
	windowMinutes int
	maxRows       int
}

// New builds an engine from the loaded configuration.
func New(cfg *store.Config) *Engine {
	return &Engine{
		windowMinutes: cfg.Analysis.WindowMinutes,
		maxRows:       cfg.Analysis.MaxRows,
	}
}

// Analyze parses raw journal text and produces the complete result. The
// five analyses are independent of each other; each runs in its own
// goroutine over the shared immutable day groups.
func (e *Engine) Analyze(ctx context.Context, csvText string) (*report.Result, error) {
	timer := logger.StartOperation(ctx, "engine.analyze")
	ctx = timer.GetContext()

	records, err := journal.ParseJournal(csvText, e.maxRows)
	if err != nil {
		timer.EndWithError(err)
		return nil, err
	}
	if len(records) == 0 {
		err := &journal.EmptyInputError{Reason: "no rows with a parseable open time"}
		timer.EndWithError(err)
		return nil, err
	}

	filtered := journal.FilterSession(records)
	if len(filtered) == 0 {
		err := &journal.EmptyInputError{Reason: "no trades inside the trading session"}
		timer.EndWithError(err)
		return nil, err
	}

	days := journal.GroupByDay(filtered)
	multiTradeDays := 0
	for _, day := range days {
		if len(day.Trades) >= 2 {
			multiTradeDays++
		}
	}
	if multiTradeDays == 0 {
		err := &journal.EmptyInputError{Reason: "no trading day has two or more trades"}
		timer.EndWithError(err)
		return nil, err
	}

	logger.Info(ctx, "journal parsed",
		"rows", len(records),
		"session_trades", len(filtered),
		"days", len(days),
		"multi_trade_days", multiTradeDays)

	var (
		wg                   sync.WaitGroup
		pairs                []analysis.TradePair
		peaks                []analysis.DayPeak
		drawdowns            []analysis.DrawdownResult
		thresholds, ddTotals []float64
		cooldown             analysis.CooldownResult
		curve                analysis.WinRateCurve
	)

	run := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := logger.StartOperation(ctx, name)
			fn()
			t.End()
		}()
	}

	run("analysis.pairs", func() { pairs = analysis.CorrelatePairs(days) })
	run("analysis.peaks", func() { peaks = analysis.TrackPeaks(days) })
	run("analysis.drawdown", func() {
		drawdowns = analysis.OptimizeDrawdown(days)
		thresholds, ddTotals = analysis.DrawdownCurve(days)
	})
	run("analysis.cooldown", func() { cooldown = analysis.OptimizeCooldown(days) })
	run("analysis.windows", func() {
		curve = analysis.SmoothWinRate(analysis.SampleWindows(days, e.windowMinutes))
	})
	wg.Wait()

	result := report.Build(report.Input{
		WindowMinutes:      e.windowMinutes,
		Rows:               len(records),
		FilteredTrades:     len(filtered),
		Days:               days,
		Pairs:              pairs,
		Peaks:              peaks,
		Drawdowns:          drawdowns,
		DrawdownThresholds: thresholds,
		DrawdownTotals:     ddTotals,
		Cooldown:           cooldown,
		WinRateCurve:       curve,
	})

	timer.End("days", len(days), "pairs", len(pairs))
	return result, nil
}
