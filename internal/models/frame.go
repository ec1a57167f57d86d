package models

// Landmark names in a tracked nose frame
const (
	LandmarkTip    = "tip"
	LandmarkLeft   = "left"
	LandmarkRight  = "right"
	LandmarkBottom = "bottom"
)

// Landmark represents one tracked 2D point with a detector confidence.
// Coordinates and confidence are NaN when the source cell was missing or
// non-numeric.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"` // 0~1, NaN when missing
}

// LandmarkFrame represents one tracked video frame: the four nose landmarks
// plus the frame index from the tracking export. Immutable once parsed.
type LandmarkFrame struct {
	FrameIndex int      `json:"frameIndex"`
	Tip        Landmark `json:"tip"`
	Left       Landmark `json:"left"`
	Right      Landmark `json:"right"`
	Bottom     Landmark `json:"bottom"`
}

// FrameMetrics holds the per-frame values derived from a LandmarkFrame.
// NaN coordinates propagate into every derived field except TipOffsetRatio,
// which collapses to 0 under the nose-width guard.
type FrameMetrics struct {
	FrameIndex     int     `json:"frameIndex"`
	NoseWidth      float64 `json:"noseWidth"`      // right.x - left.x, may be negative
	MidpointX      float64 `json:"midpointX"`      // (right.x + left.x) / 2
	TipOffset      float64 `json:"tipOffset"`      // tip.x - midpointX
	TipOffsetRatio float64 `json:"tipOffsetRatio"` // tipOffset / noseWidth, 0 when |noseWidth| <= 5
	AvgConfidence  float64 `json:"avgConfidence"`  // mean of the four landmark confidences
}

// FrameMetricsResponse represents a paginated response of per-frame metrics
type FrameMetricsResponse struct {
	Data       []FrameMetrics `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
