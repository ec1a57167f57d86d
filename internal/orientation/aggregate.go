package orientation

import (
	"math"

	"github.com/houndlab/orientation-backend-go/internal/models"
	"github.com/houndlab/orientation-backend-go/internal/stats"
)

// TotalSegments returns the number of time segments for a frame sequence:
// max(1, floor(videoDuration/interval)) with videoDuration = frameCount/fps.
func TotalSegments(frameCount int, fps, interval float64) int {
	n := int(math.Floor(float64(frameCount) / fps / interval))
	if n < 1 {
		return 1
	}
	return n
}

// PartitionSegments splits [0, frameCount) into segments by the
// index-proportional rule: segment i owns frame indices
// [floor(i*fpp), floor((i+1)*fpp)) with fpp = frameCount/totalSegments.
// Boundaries are spread evenly over the frame count rather than snapped to
// exact time boundaries, so the partition is exact for every frame count:
// no gap, no overlap, empty tail segments allowed.
func PartitionSegments(frameCount int, fps, interval float64) []models.Segment {
	total := TotalSegments(frameCount, fps, interval)
	fpp := float64(frameCount) / float64(total)

	segments := make([]models.Segment, total)
	for i := 0; i < total; i++ {
		start := int(math.Floor(float64(i) * fpp))
		end := int(math.Floor(float64(i+1) * fpp))
		if i == total-1 {
			// Guard against float truncation on the final boundary; the
			// partition invariant requires the tail to end exactly at
			// frameCount.
			end = frameCount
		}
		segments[i] = models.Segment{
			SegmentIndex: i,
			StartIdx:     start,
			EndIdx:       end,
			TimeStart:    float64(i) * interval,
			TimeEnd:      float64(i+1) * interval,
		}
	}
	return segments
}

// AggregateSegment computes the per-landmark mean position and confidence
// over the segment's member frames. Returns nil for an empty segment.
// By default NaN-bearing frames are not filtered, so a single missing
// detection poisons the mean; skipNaN averages only the numeric values
// per field instead.
func AggregateSegment(frames []models.LandmarkFrame, seg models.Segment, skipNaN bool) *models.SegmentAggregate {
	if seg.FrameCount() == 0 {
		return nil
	}

	member := frames[seg.StartIdx:seg.EndIdx]
	mean := stats.Mean
	if skipNaN {
		mean = stats.MeanSkipNaN
	}

	field := func(get func(models.LandmarkFrame) float64) float64 {
		values := make([]float64, len(member))
		for i, f := range member {
			values[i] = get(f)
		}
		return mean(values)
	}

	landmark := func(get func(models.LandmarkFrame) models.Landmark) models.Landmark {
		return models.Landmark{
			X:          field(func(f models.LandmarkFrame) float64 { return get(f).X }),
			Y:          field(func(f models.LandmarkFrame) float64 { return get(f).Y }),
			Confidence: field(func(f models.LandmarkFrame) float64 { return get(f).Confidence }),
		}
	}

	return &models.SegmentAggregate{
		Tip:    landmark(func(f models.LandmarkFrame) models.Landmark { return f.Tip }),
		Left:   landmark(func(f models.LandmarkFrame) models.Landmark { return f.Left }),
		Right:  landmark(func(f models.LandmarkFrame) models.Landmark { return f.Right }),
		Bottom: landmark(func(f models.LandmarkFrame) models.Landmark { return f.Bottom }),
	}
}
