package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 5.0, Mean([]float64{5}))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.True(t, math.IsNaN(Mean([]float64{1, math.NaN(), 3})), "NaN propagates")
}

func TestMeanSkipNaN(t *testing.T) {
	assert.InDelta(t, 2.0, MeanSkipNaN([]float64{1, math.NaN(), 3}), 1e-12)
	assert.InDelta(t, 2.5, MeanSkipNaN([]float64{1, 2, 3, 4}), 1e-12)
	assert.True(t, math.IsNaN(MeanSkipNaN([]float64{math.NaN(), math.NaN()})))
	assert.True(t, math.IsNaN(MeanSkipNaN(nil)))
}

func TestVarianceAndStdDev(t *testing.T) {
	assert.Equal(t, 0.0, Variance([]float64{7}))
	// Sample variance of {2,4,4,4,5,5,7,9} is 4.571428...
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 32.0/7.0, Variance(values), 1e-9)
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev(values), 1e-9)
}

func TestMinMax(t *testing.T) {
	values := []float64{3.5, -2, 0, 9.1, 4}
	assert.Equal(t, -2.0, Min(values))
	assert.Equal(t, 9.1, Max(values))
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
}
