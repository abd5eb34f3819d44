// Package metrics turns an equity trajectory into comparable risk/return
// statistics.
//
// Degenerate inputs (empty series, zero variance, flat equity) yield NaN,
// never a fault and never a silent zero: a zero would wrongly read as a
// measured zero risk or return.
package metrics

import (
	"math"
	"time"
)

// PeriodsPerYear is the annualization factor for daily equity series.
const PeriodsPerYear = 252

// Report is the summary of one completed backtest.
type Report struct {
	FinalValue     float64 `json:"final_value"`
	ReturnTotalPct float64 `json:"return_total_pct"`
	Sharpe         float64 `json:"sharpe"`
	MaxDrawdown    float64 `json:"max_drawdown"`
	NumPeriods     int     `json:"num_periods"`
}

// LogReturns returns ln(V_t / V_{t-1}) for t >= 1. The first point has no
// predecessor and is dropped, so the output is one shorter than the input.
func LogReturns(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = math.Log(series[i] / series[i-1])
	}
	return out
}

// SharpeRatio annualizes mean/stdev of the return series using the given
// periods per year. The standard deviation is the population one. An empty
// series or zero variance yields NaN.
func SharpeRatio(returns []float64, periodsPerYear float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	stdev := math.Sqrt(variance)
	if stdev == 0 {
		return math.NaN()
	}
	return mean / stdev * math.Sqrt(periodsPerYear)
}

// MaxDrawdown returns the worst peak-to-trough ratio of the series:
// min over t of V_t/runningMax - 1. A monotone non-decreasing series has
// drawdown 0; an empty series has no drawdown and yields NaN.
func MaxDrawdown(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}

	worst := 0.0
	peak := series[0]
	for _, v := range series {
		if v > peak {
			peak = v
		}
		if dd := v/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

// BasicReport aligns the equity trajectory to the price table's date index
// and computes the summary statistics. The trajectory carries one extra
// leading point (the pre-trading initial capital); it is dropped before any
// statistic is computed.
func BasicReport(equity []float64, index []time.Time) Report {
	aligned := Align(equity, index)

	r := Report{
		FinalValue:     math.NaN(),
		ReturnTotalPct: math.NaN(),
		Sharpe:         SharpeRatio(LogReturns(aligned), PeriodsPerYear),
		MaxDrawdown:    MaxDrawdown(aligned),
		NumPeriods:     len(aligned),
	}
	if len(aligned) > 0 {
		r.FinalValue = aligned[len(aligned)-1]
	}
	if len(aligned) > 1 {
		r.ReturnTotalPct = aligned[len(aligned)-1]/aligned[0] - 1
	}
	return r
}

// Align drops the synthetic day-0 point and truncates the remainder to the
// date index length.
func Align(equity []float64, index []time.Time) []float64 {
	if len(equity) < 2 {
		return nil
	}
	aligned := equity[1:]
	if len(aligned) > len(index) {
		aligned = aligned[:len(index)]
	}
	return aligned
}
