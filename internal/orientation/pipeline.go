package orientation

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/houndlab/orientation-backend-go/internal/geometry"
	"github.com/houndlab/orientation-backend-go/internal/models"
)

// Pipeline runs the full per-session computation: partition the frame
// sequence into segments, aggregate each one, classify it and compute the
// head tilt. It holds no state between runs.
type Pipeline struct {
	params     Params
	classifier Classifier
}

// NewPipeline validates the parameters and resolves the classifier mode.
// Segment count computation divides by fps and interval, so non-positive
// values are rejected here rather than surfacing as bogus partitions.
func NewPipeline(mode string, params Params) (*Pipeline, error) {
	if params.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %g", params.FPS)
	}
	if params.Interval <= 0 {
		return nil, fmt.Errorf("segment interval must be positive, got %g", params.Interval)
	}
	classifier, err := NewClassifier(mode, params)
	if err != nil {
		return nil, err
	}
	return &Pipeline{params: params, classifier: classifier}, nil
}

// Params returns the pipeline parameters.
func (p *Pipeline) Params() Params { return p.params }

// Mode returns the classifier mode name.
func (p *Pipeline) Mode() string { return p.classifier.Name() }

// Run classifies every segment of the frame sequence. Segments are
// independent: degenerate geometry in one never affects another. An empty
// frame sequence is a configuration error; an empty segment is not, and
// classifies ELSEWHERE with no aggregate.
func (p *Pipeline) Run(frames []models.LandmarkFrame) ([]models.SegmentResult, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to classify")
	}

	segments := PartitionSegments(len(frames), p.params.FPS, p.params.Interval)
	results := make([]models.SegmentResult, len(segments))

	for i, seg := range segments {
		agg := AggregateSegment(frames, seg, p.params.SkipNaN)
		results[i] = models.SegmentResult{
			Segment:   seg,
			Aggregate: agg,
			Result:    p.classifySegment(agg),
		}
	}
	return results, nil
}

func (p *Pipeline) classifySegment(agg *models.SegmentAggregate) models.ClassificationResult {
	if agg == nil {
		// No frames landed in this segment; there is no geometry to judge.
		return models.ClassificationResult{
			Label:          models.LabelElsewhere,
			TiltAngle:      0.0,
			IsStraightTilt: true,
		}
	}

	label, border := p.classifier.Classify(agg)
	angle, straight := geometry.TiltAngle(
		r2.Point{X: agg.Tip.X, Y: agg.Tip.Y},
		r2.Point{X: agg.Bottom.X, Y: agg.Bottom.Y},
		p.params.TiltMargin,
	)

	return models.ClassificationResult{
		Label:          label,
		BorderPoint:    border,
		TiltAngle:      angle,
		IsStraightTilt: straight,
	}
}
