// Package indicators provides the rolling series used for signal generation.
//
// All functions return series aligned index-for-index with their input.
// Positions where a value is not yet defined (warmup, missing history) carry
// NaN rather than zero, so a downstream comparison against an undefined
// value is always false.
package indicators

import "math"

// Lag shifts a series forward by one position: out[i] = values[i-1], with
// NaN at index 0. A decision made for day T must only see data through T-1.
func Lag(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(out) == 0 {
		return out
	}
	out[0] = math.NaN()
	copy(out[1:], values[:len(values)-1])
	return out
}

// SMA returns the simple moving average of values over the given window.
// out[i] is NaN until a full window is available, and NaN whenever the
// window contains an undefined input.
func SMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		// NaN inputs propagate through the sum.
		out[i] = sum / float64(window)
	}
	return out
}

// RSI returns the Relative Strength Index of the close series over the
// given period: 100 - 100/(1+RS) with RS = avgGain/avgLoss across the last
// `period` one-day changes.
//
// When avgLoss is zero RS is undefined, so out[i] is NaN rather than an
// inferred 100. The first `period` positions are NaN (not enough changes).
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	gain := make([]float64, n)
	loss := make([]float64, n)
	for i := range closes {
		if i == 0 {
			gain[i] = math.NaN()
			loss[i] = math.NaN()
			continue
		}
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gain[i] = delta
		} else {
			loss[i] = -delta
		}
	}

	avgGain := SMA(gain, period)
	avgLoss := SMA(loss, period)

	out := make([]float64, n)
	for i := range out {
		switch {
		case math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]):
			out[i] = math.NaN()
		case avgLoss[i] == 0:
			out[i] = math.NaN()
		default:
			rs := avgGain[i] / avgLoss[i]
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}
