package geometry

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 920.0
	testHeight = 518.0
)

func TestBorderIntersection(t *testing.T) {
	tests := []struct {
		name   string
		bottom r2.Point
		tip    r2.Point
		want   r2.Point
	}{
		{
			name:   "straight up exits top border",
			bottom: r2.Point{X: 460, Y: 400},
			tip:    r2.Point{X: 460, Y: 300},
			want:   r2.Point{X: 460, Y: 0},
		},
		{
			name:   "leftward exits left border",
			bottom: r2.Point{X: 460, Y: 400},
			tip:    r2.Point{X: 360, Y: 400},
			want:   r2.Point{X: 0, Y: 400},
		},
		{
			name:   "rightward exits right border",
			bottom: r2.Point{X: 460, Y: 400},
			tip:    r2.Point{X: 560, Y: 400},
			want:   r2.Point{X: 919, Y: 400},
		},
		{
			name:   "diagonal down-right exits bottom before right",
			bottom: r2.Point{X: 100, Y: 100},
			tip:    r2.Point{X: 200, Y: 200},
			want:   r2.Point{X: 517, Y: 517},
		},
		{
			name:   "tip near border still projects forward",
			bottom: r2.Point{X: 450, Y: 20},
			tip:    r2.Point{X: 450, Y: 5},
			want:   r2.Point{X: 450, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BorderIntersection(tt.bottom, tt.tip, testWidth, testHeight)
			require.True(t, ok)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestBorderIntersectionIgnoresBackwardHit(t *testing.T) {
	// Pointing up from the middle: the bottom border is behind the ray and
	// must never win even though it is closer to the origin point.
	got, ok := BorderIntersection(
		r2.Point{X: 300, Y: 258},
		r2.Point{X: 300, Y: 100},
		testWidth, testHeight,
	)
	require.True(t, ok)
	assert.Equal(t, 0.0, got.Y)
}

func TestBorderIntersectionDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		bottom r2.Point
		tip    r2.Point
	}{
		{
			name:   "zero direction vector",
			bottom: r2.Point{X: 100, Y: 100},
			tip:    r2.Point{X: 100, Y: 100},
		},
		{
			name:   "NaN tip coordinate",
			bottom: r2.Point{X: 100, Y: 100},
			tip:    r2.Point{X: math.NaN(), Y: 50},
		},
		{
			name:   "NaN bottom coordinate",
			bottom: r2.Point{X: math.NaN(), Y: math.NaN()},
			tip:    r2.Point{X: 100, Y: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := BorderIntersection(tt.bottom, tt.tip, testWidth, testHeight)
			assert.False(t, ok)
		})
	}
}

func TestBorderIntersectionRoundsX(t *testing.T) {
	// An oblique exit lands on a fractional x; the reported coordinate is
	// rounded to one decimal.
	got, ok := BorderIntersection(
		r2.Point{X: 460, Y: 401},
		r2.Point{X: 463, Y: 300},
		testWidth, testHeight,
	)
	require.True(t, ok)
	assert.Equal(t, Round1(got.X), got.X)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.2, Round1(1.24))
	assert.Equal(t, 1.3, Round1(1.26))
	assert.Equal(t, -1.3, Round1(-1.26))
	assert.Equal(t, 45.0, Round1(45.0))
}
