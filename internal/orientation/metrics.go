package orientation

import (
	"math"

	"github.com/houndlab/orientation-backend-go/internal/models"
	"github.com/houndlab/orientation-backend-go/internal/stats"
)

// noseWidthGuard is the minimum |nose width| in pixels for the tip offset
// ratio to be meaningful. Below it the ratio collapses to 0 instead of
// blowing up on degenerate detections, which biases such frames toward
// STRAIGHT.
const noseWidthGuard = 5.0

// DeriveMetrics computes the per-frame metrics from the four landmarks.
// Total: never fails, NaN coordinates propagate into every derived value
// except TipOffsetRatio, which the width guard collapses to 0.
func DeriveMetrics(f models.LandmarkFrame) models.FrameMetrics {
	width := f.Right.X - f.Left.X
	midpoint := (f.Right.X + f.Left.X) / 2
	offset := f.Tip.X - midpoint

	ratio := 0.0
	if math.Abs(width) > noseWidthGuard {
		ratio = offset / width
	}

	return models.FrameMetrics{
		FrameIndex: f.FrameIndex,
		NoseWidth:  width,
		MidpointX:  midpoint,
		TipOffset:  offset,
		TipOffsetRatio: ratio,
		AvgConfidence: stats.Mean([]float64{
			f.Tip.Confidence,
			f.Left.Confidence,
			f.Right.Confidence,
			f.Bottom.Confidence,
		}),
	}
}

// DeriveAll computes metrics for every frame in order.
func DeriveAll(frames []models.LandmarkFrame) []models.FrameMetrics {
	metrics := make([]models.FrameMetrics, len(frames))
	for i, f := range frames {
		metrics[i] = DeriveMetrics(f)
	}
	return metrics
}
