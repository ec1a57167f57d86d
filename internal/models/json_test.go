package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandmarkJSONEncodesNaNAsNull(t *testing.T) {
	l := Landmark{X: math.NaN(), Y: 300.5, Confidence: math.NaN()}

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":null,"y":300.5,"confidence":null}`, string(data))

	var back Landmark
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, math.IsNaN(back.X))
	assert.Equal(t, 300.5, back.Y)
	assert.True(t, math.IsNaN(back.Confidence))
}

func TestFrameMetricsJSONEncodesNaNAsNull(t *testing.T) {
	m := FrameMetrics{
		FrameIndex:     3,
		NoseWidth:      100,
		MidpointX:      150,
		TipOffset:      math.NaN(),
		TipOffsetRatio: math.NaN(),
		AvgConfidence:  0.75,
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"frameIndex":3,"noseWidth":100,"midpointX":150,"tipOffset":null,"tipOffsetRatio":null,"avgConfidence":0.75}`,
		string(data))

	var back FrameMetrics
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 3, back.FrameIndex)
	assert.True(t, math.IsNaN(back.TipOffset))
	assert.Equal(t, 0.75, back.AvgConfidence)
}

func TestFrameWithNaNLandmarkMarshals(t *testing.T) {
	// A whole frame with a missing detection must survive a round trip;
	// plain float64 fields would make encoding/json refuse the NaN.
	f := LandmarkFrame{
		FrameIndex: 1,
		Tip:        Landmark{X: math.NaN(), Y: math.NaN(), Confidence: math.NaN()},
		Left:       Landmark{X: 100, Y: 120, Confidence: 0.9},
		Right:      Landmark{X: 200, Y: 120, Confidence: 0.9},
		Bottom:     Landmark{X: 150, Y: 140, Confidence: 0.9},
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var back LandmarkFrame
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, math.IsNaN(back.Tip.X))
	assert.Equal(t, 100.0, back.Left.X)
}
