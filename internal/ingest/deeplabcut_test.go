package ingest

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dlcHeader = `scorer,nose_tip,nose_tip,nose_tip,nose_right,nose_right,nose_right,nose_bottom,nose_bottom,nose_bottom,nose_left,nose_left,nose_left
coords,x,y,likelihood,x,y,likelihood,x,y,likelihood,x,y,likelihood
`

func TestParseDeepLabCut(t *testing.T) {
	csv := dlcHeader +
		"0,460.5,300.0,0.95,500.0,380.0,0.9,460.0,400.0,0.85,420.0,380.0,0.8\n" +
		"1,461.0,301.0,0.94,501.0,381.0,0.89,461.0,401.0,0.84,421.0,381.0,0.79\n"

	frames, err := ParseDeepLabCut(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, frames, 2)

	f := frames[0]
	assert.Equal(t, 0, f.FrameIndex)
	assert.Equal(t, 460.5, f.Tip.X)
	assert.Equal(t, 300.0, f.Tip.Y)
	assert.Equal(t, 0.95, f.Tip.Confidence)
	// Export column order is tip, right, bottom, left.
	assert.Equal(t, 500.0, f.Right.X)
	assert.Equal(t, 460.0, f.Bottom.X)
	assert.Equal(t, 420.0, f.Left.X)

	assert.Equal(t, 1, frames[1].FrameIndex)
}

func TestParseDeepLabCutMissingCells(t *testing.T) {
	// Non-numeric and empty cells become NaN, not an error.
	csv := dlcHeader +
		"0,,300.0,0.95,nan,380.0,0.9,460.0,400.0,0.85,420.0,380.0,abc\n"

	frames, err := ParseDeepLabCut(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, frames, 1)

	f := frames[0]
	assert.True(t, math.IsNaN(f.Tip.X))
	assert.Equal(t, 300.0, f.Tip.Y)
	assert.True(t, math.IsNaN(f.Right.X), "literal nan parses as NaN")
	assert.True(t, math.IsNaN(f.Left.Confidence))
	assert.Equal(t, 460.0, f.Bottom.X)
}

func TestParseDeepLabCutFrameIndexFallback(t *testing.T) {
	csv := dlcHeader +
		"x,460.0,300.0,0.95,500.0,380.0,0.9,460.0,400.0,0.85,420.0,380.0,0.8\n" +
		"7,461.0,301.0,0.94,501.0,381.0,0.89,461.0,401.0,0.84,421.0,381.0,0.79\n"

	frames, err := ParseDeepLabCut(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, 0, frames[0].FrameIndex, "non-numeric frame cell falls back to row ordinal")
	assert.Equal(t, 7, frames[1].FrameIndex)
}

func TestParseDeepLabCutShortRow(t *testing.T) {
	csv := dlcHeader + "0,460.0,300.0,0.95\n"

	_, err := ParseDeepLabCut(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 13 columns")
}

func TestParseDeepLabCutNoData(t *testing.T) {
	_, err := ParseDeepLabCut(strings.NewReader(dlcHeader))
	assert.Error(t, err)

	_, err = ParseDeepLabCut(strings.NewReader(""))
	assert.Error(t, err)
}
