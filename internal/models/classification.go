package models

// Orientation label constants
const (
	LabelLeft           = "LEFT"
	LabelRight          = "RIGHT"
	LabelStraight       = "STRAIGHT"
	LabelElsewhere      = "ELSEWHERE"
	LabelPoorLikelihood = "POOR_LIKELIHOOD"
	LabelUndefined      = "UNDEFINED"
)

// PrimaryLabels are the four labels a reviewer can assign by hand and that
// every summary reports even at zero count.
var PrimaryLabels = []string{LabelLeft, LabelRight, LabelStraight, LabelElsewhere}

// IsAssignableLabel reports whether a label value may be set manually.
func IsAssignableLabel(label string) bool {
	switch label {
	case LabelLeft, LabelRight, LabelStraight, LabelElsewhere, LabelPoorLikelihood:
		return true
	}
	return false
}

// BorderPoint is the image-border intersection of the bottom->tip ray,
// produced by the ray classifier as a geometric diagnostic.
type BorderPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ClassificationResult holds the automatic classification of one segment.
// BorderPoint is nil for ratio-mode results and for rays that never leave
// the image bounds.
type ClassificationResult struct {
	Label          string       `json:"label"`
	BorderPoint    *BorderPoint `json:"borderPoint,omitempty"`
	TiltAngle      float64      `json:"tiltAngle"` // degrees from vertical, negative = left
	IsStraightTilt bool         `json:"isStraightTilt"`
}

// Classifier mode names
const (
	ModeRatio = "ratio"
	ModeRay   = "ray"
)
