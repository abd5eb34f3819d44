package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLag(t *testing.T) {
	t.Parallel()

	out := Lag([]float64{1, 2, 3})
	assert.True(t, math.IsNaN(out[0]))
	assert.Equal(t, 1.0, out[1])
	assert.Equal(t, 2.0, out[2])

	assert.Empty(t, Lag(nil))
}

func TestSMA(t *testing.T) {
	t.Parallel()

	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestSMAPropagatesNaN(t *testing.T) {
	t.Parallel()

	// A lagged series starts with NaN; any window touching it is undefined.
	out := SMA(Lag([]float64{10, 11, 12, 13}), 2)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 10.5, out[2], 1e-9)
	assert.InDelta(t, 11.5, out[3], 1e-9)
}

func TestRSIFlatSeriesUndefined(t *testing.T) {
	t.Parallel()

	// No losses ever: avg loss stays zero, RSI must stay undefined rather
	// than being read as 100.
	flat := []float64{50, 50, 50, 50, 50, 50, 50, 50}
	for _, v := range RSI(flat, 3) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRSIKnownValues(t *testing.T) {
	t.Parallel()

	// Changes: +1, -1, +1, -1 -> over period 2 avg gain = avg loss = 0.5,
	// RS = 1, RSI = 50.
	closes := []float64{10, 11, 10, 11, 10}
	out := RSI(closes, 2)

	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 50.0, out[2], 1e-9)
	assert.InDelta(t, 50.0, out[3], 1e-9)
	assert.InDelta(t, 50.0, out[4], 1e-9)
}

func TestRSIAllGains(t *testing.T) {
	t.Parallel()

	closes := []float64{10, 11, 12, 13, 14}
	out := RSI(closes, 2)
	// Strictly rising series has zero average loss everywhere.
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}
