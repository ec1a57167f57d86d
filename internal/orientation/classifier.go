package orientation

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/houndlab/orientation-backend-go/internal/geometry"
	"github.com/houndlab/orientation-backend-go/internal/models"
	"github.com/houndlab/orientation-backend-go/internal/stats"
)

// Params carries every tunable constant of the pipeline. The zone
// boundaries and image dimensions are calibration values tied to a specific
// camera/arena setup and must come from configuration, never from code.
type Params struct {
	FPS      float64 `json:"fps"`
	Interval float64 `json:"interval"` // seconds per segment

	// ratio mode
	LikelihoodThreshold float64 `json:"likelihoodThreshold"` // below: ELSEWHERE
	StraightThreshold   float64 `json:"straightThreshold"`   // symmetric ratio band
	MinNoseWidth        float64 `json:"minNoseWidth"`
	MaxNoseWidth        float64 `json:"maxNoseWidth"`

	// ray mode
	RayConfidenceThreshold float64 `json:"rayConfidenceThreshold"` // below: POOR_LIKELIHOOD
	ImageWidth             float64 `json:"imageWidth"`
	ImageHeight            float64 `json:"imageHeight"`
	ZoneLeftMin            float64 `json:"zoneLeftMin"`
	ZoneLeftMax            float64 `json:"zoneLeftMax"` // also the STRAIGHT zone minimum
	ZoneStraightMax        float64 `json:"zoneStraightMax"`
	ZoneRightMax           float64 `json:"zoneRightMax"`

	TiltMargin float64 `json:"tiltMargin"`
	SkipNaN    bool    `json:"skipNaN"` // average only numeric frames per field
}

// DefaultParams returns the reference-setup calibration.
func DefaultParams() Params {
	return Params{
		FPS:                    30.0,
		Interval:               1.0,
		LikelihoodThreshold:    0.3,
		StraightThreshold:      0.12,
		MinNoseWidth:           5.0,
		MaxNoseWidth:           200.0,
		RayConfidenceThreshold: 0.6,
		ImageWidth:             920.0,
		ImageHeight:            518.0,
		ZoneLeftMin:            125.0,
		ZoneLeftMax:            325.0,
		ZoneStraightMax:        600.0,
		ZoneRightMax:           800.0,
		TiltMargin:             geometry.DefaultTiltMargin,
	}
}

// Classifier turns one non-empty segment aggregate into an orientation
// label, optionally with the border-point diagnostic. Classification never
// fails: indeterminate geometry and low confidence resolve to defined
// label values.
type Classifier interface {
	Classify(agg *models.SegmentAggregate) (label string, border *models.BorderPoint)
	Name() string
}

// ClassifierFactory is a function that creates a classifier from params
type ClassifierFactory func(p Params) Classifier

// classifierRegistry maps mode names to classifier factories
var classifierRegistry = make(map[string]ClassifierFactory)

// RegisterClassifier registers a classifier factory for a mode name
func RegisterClassifier(mode string, factory ClassifierFactory) {
	classifierRegistry[mode] = factory
}

// NewClassifier creates the classifier for a mode name
func NewClassifier(mode string, p Params) (Classifier, error) {
	factory, ok := classifierRegistry[mode]
	if !ok {
		return nil, fmt.Errorf("unknown classifier mode %q (registered: %v)", mode, RegisteredModes())
	}
	return factory(p), nil
}

// RegisteredModes returns the registered mode names, sorted.
func RegisteredModes() []string {
	modes := make([]string, 0, len(classifierRegistry))
	for mode := range classifierRegistry {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}

func init() {
	RegisterClassifier(models.ModeRatio, func(p Params) Classifier { return &RatioClassifier{params: p} })
	RegisterClassifier(models.ModeRay, func(p Params) Classifier { return &RayClassifier{params: p} })
}

// RatioClassifier implements the threshold classification over the
// normalized tip offset ratio. It emits LEFT, RIGHT, STRAIGHT or ELSEWHERE
// and never produces a border point.
type RatioClassifier struct {
	params Params
}

// Name returns the mode name
func (c *RatioClassifier) Name() string { return models.ModeRatio }

// Classify labels a segment by where the aggregated nose tip sits between
// the left and right nostril landmarks. Low mean confidence or a nose width
// outside the plausible range means the animal is not clearly in view.
func (c *RatioClassifier) Classify(agg *models.SegmentAggregate) (string, *models.BorderPoint) {
	avgConfidence := stats.Mean([]float64{
		agg.Tip.Confidence,
		agg.Left.Confidence,
		agg.Right.Confidence,
		agg.Bottom.Confidence,
	})
	width := agg.Right.X - agg.Left.X

	if avgConfidence < c.params.LikelihoodThreshold {
		return models.LabelElsewhere, nil
	}
	if width < c.params.MinNoseWidth || width > c.params.MaxNoseWidth {
		return models.LabelElsewhere, nil
	}

	midpoint := (agg.Right.X + agg.Left.X) / 2
	ratio := 0.0
	if math.Abs(width) > noseWidthGuard {
		ratio = (agg.Tip.X - midpoint) / width
	}

	switch {
	case math.Abs(ratio) <= c.params.StraightThreshold:
		return models.LabelStraight, nil
	case ratio < -c.params.StraightThreshold:
		return models.LabelLeft, nil
	case ratio > c.params.StraightThreshold:
		return models.LabelRight, nil
	}
	return models.LabelStraight, nil
}

// RayClassifier implements the border-intersection classification: the ray
// from the aggregated bottom landmark through the tip is extended until it
// leaves the reference image, and the exit x decides the zone.
type RayClassifier struct {
	params Params
}

// Name returns the mode name
func (c *RayClassifier) Name() string { return models.ModeRay }

// Classify labels a segment by the border exit of the bottom->tip ray.
// Low confidence on either landmark takes priority over geometry and yields
// POOR_LIKELIHOOD, with the border point still attached as a diagnostic
// when it could be computed. NaN coordinates and rays with no in-bounds
// forward intersection yield UNDEFINED.
func (c *RayClassifier) Classify(agg *models.SegmentAggregate) (string, *models.BorderPoint) {
	bx, by := agg.Bottom.X, agg.Bottom.Y
	tx, ty := agg.Tip.X, agg.Tip.Y
	if math.IsNaN(bx) || math.IsNaN(by) || math.IsNaN(tx) || math.IsNaN(ty) {
		return models.LabelUndefined, nil
	}

	var border *models.BorderPoint
	hit, ok := geometry.BorderIntersection(
		r2.Point{X: bx, Y: by},
		r2.Point{X: tx, Y: ty},
		c.params.ImageWidth, c.params.ImageHeight,
	)
	if ok {
		border = &models.BorderPoint{X: hit.X, Y: hit.Y}
	}

	if agg.Bottom.Confidence < c.params.RayConfidenceThreshold ||
		agg.Tip.Confidence < c.params.RayConfidenceThreshold {
		return models.LabelPoorLikelihood, border
	}

	if !ok {
		return models.LabelUndefined, nil
	}

	return c.zone(hit.X), border
}

// zone maps a border x coordinate to its orientation band. The bands are
// open intervals: the boundary values themselves belong to no band and
// resolve to ELSEWHERE, as do both margins of the image.
func (c *RayClassifier) zone(x float64) string {
	switch {
	case x > c.params.ZoneLeftMin && x < c.params.ZoneLeftMax:
		return models.LabelLeft
	case x > c.params.ZoneLeftMax && x < c.params.ZoneStraightMax:
		return models.LabelStraight
	case x > c.params.ZoneStraightMax && x < c.params.ZoneRightMax:
		return models.LabelRight
	}
	return models.LabelElsewhere
}
