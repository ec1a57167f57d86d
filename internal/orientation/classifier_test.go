package orientation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houndlab/orientation-backend-go/internal/models"
)

// aggAt builds a segment aggregate with the nose pointing from a fixed
// bottom landmark toward tipX/tipY, nostrils at leftX/rightX, uniform
// confidence.
func aggAt(tipX, tipY, leftX, rightX, confidence float64) *models.SegmentAggregate {
	return &models.SegmentAggregate{
		Tip:    models.Landmark{X: tipX, Y: tipY, Confidence: confidence},
		Left:   models.Landmark{X: leftX, Y: 380, Confidence: confidence},
		Right:  models.Landmark{X: rightX, Y: 380, Confidence: confidence},
		Bottom: models.Landmark{X: (leftX + rightX) / 2, Y: 400, Confidence: confidence},
	}
}

func TestNewClassifier(t *testing.T) {
	p := DefaultParams()

	for _, mode := range []string{models.ModeRatio, models.ModeRay} {
		c, err := NewClassifier(mode, p)
		require.NoError(t, err)
		assert.Equal(t, mode, c.Name())
	}

	_, err := NewClassifier("nearest", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown classifier mode")
}

func TestRegisteredModes(t *testing.T) {
	assert.Equal(t, []string{models.ModeRatio, models.ModeRay}, RegisteredModes())
}

func TestRatioClassifier(t *testing.T) {
	c := &RatioClassifier{params: DefaultParams()}

	tests := []struct {
		name string
		agg  *models.SegmentAggregate
		want string
	}{
		{
			name: "tip left of midpoint",
			agg:  aggAt(130, 300, 100, 200, 0.9),
			want: models.LabelLeft,
		},
		{
			name: "tip right of midpoint",
			agg:  aggAt(170, 300, 100, 200, 0.9),
			want: models.LabelRight,
		},
		{
			name: "tip near midpoint",
			agg:  aggAt(155, 300, 100, 200, 0.9),
			want: models.LabelStraight,
		},
		{
			name: "ratio exactly at threshold stays straight",
			agg:  aggAt(162, 300, 100, 200, 0.9),
			want: models.LabelStraight,
		},
		{
			name: "low mean confidence",
			agg:  aggAt(130, 300, 100, 200, 0.2),
			want: models.LabelElsewhere,
		},
		{
			name: "nose too narrow",
			agg:  aggAt(102, 300, 100, 104, 0.9),
			want: models.LabelElsewhere,
		},
		{
			name: "nose too wide",
			agg:  aggAt(250, 300, 100, 400, 0.9),
			want: models.LabelElsewhere,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, border := c.Classify(tt.agg)
			assert.Equal(t, tt.want, label)
			assert.Nil(t, border, "ratio mode never produces a border point")
		})
	}
}

// rayAgg builds an aggregate whose bottom->tip ray is vertical at x,
// exiting the top border at (x, 0).
func rayAgg(x, confidence float64) *models.SegmentAggregate {
	return &models.SegmentAggregate{
		Tip:    models.Landmark{X: x, Y: 300, Confidence: confidence},
		Left:   models.Landmark{X: x - 40, Y: 380, Confidence: confidence},
		Right:  models.Landmark{X: x + 40, Y: 380, Confidence: confidence},
		Bottom: models.Landmark{X: x, Y: 400, Confidence: confidence},
	}
}

func TestRayClassifierZones(t *testing.T) {
	c := &RayClassifier{params: DefaultParams()}

	tests := []struct {
		name string
		x    float64
		want string
	}{
		{"exit in left zone", 200, models.LabelLeft},
		{"exit in straight zone", 460, models.LabelStraight},
		{"exit in right zone", 700, models.LabelRight},
		{"exit left of all zones", 50, models.LabelElsewhere},
		{"exit right of all zones", 850, models.LabelElsewhere},
		{"zone boundaries belong to no zone", 325, models.LabelElsewhere},
		{"straight/right boundary excluded", 600, models.LabelElsewhere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, border := c.Classify(rayAgg(tt.x, 0.9))
			assert.Equal(t, tt.want, label)
			require.NotNil(t, border)
			assert.Equal(t, tt.x, border.X)
			assert.Equal(t, 0.0, border.Y)
		})
	}
}

func TestRayClassifierNaN(t *testing.T) {
	c := &RayClassifier{params: DefaultParams()}

	agg := rayAgg(460, 0.9)
	agg.Tip.X = math.NaN()
	label, border := c.Classify(agg)
	assert.Equal(t, models.LabelUndefined, label)
	assert.Nil(t, border)

	agg = rayAgg(460, 0.9)
	agg.Bottom.Y = math.NaN()
	label, border = c.Classify(agg)
	assert.Equal(t, models.LabelUndefined, label)
	assert.Nil(t, border)
}

func TestRayClassifierPoorLikelihood(t *testing.T) {
	c := &RayClassifier{params: DefaultParams()}

	// Confidence takes priority over geometry, but the border point is
	// still attached as a diagnostic when computable.
	label, border := c.Classify(rayAgg(460, 0.5))
	assert.Equal(t, models.LabelPoorLikelihood, label)
	require.NotNil(t, border)
	assert.Equal(t, 460.0, border.X)

	// One low landmark suffices.
	agg := rayAgg(460, 0.9)
	agg.Tip.Confidence = 0.4
	label, _ = c.Classify(agg)
	assert.Equal(t, models.LabelPoorLikelihood, label)

	// Degenerate geometry under low confidence: still POOR_LIKELIHOOD,
	// just without the diagnostic.
	agg = rayAgg(460, 0.5)
	agg.Tip.X = agg.Bottom.X
	agg.Tip.Y = agg.Bottom.Y
	label, border = c.Classify(agg)
	assert.Equal(t, models.LabelPoorLikelihood, label)
	assert.Nil(t, border)
}

func TestRayClassifierUndefinedRay(t *testing.T) {
	c := &RayClassifier{params: DefaultParams()}

	// Coincident landmarks with good confidence: no ray to extend.
	agg := rayAgg(460, 0.9)
	agg.Tip.X = agg.Bottom.X
	agg.Tip.Y = agg.Bottom.Y
	label, border := c.Classify(agg)
	assert.Equal(t, models.LabelUndefined, label)
	assert.Nil(t, border)
}

func TestRayClassifierConfidenceBoundary(t *testing.T) {
	c := &RayClassifier{params: DefaultParams()}

	// Exactly at the threshold is good enough.
	label, _ := c.Classify(rayAgg(460, 0.6))
	assert.Equal(t, models.LabelStraight, label)
}
