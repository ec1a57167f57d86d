package models

// Segment represents one time segment of the video: a contiguous half-open
// frame index range [StartIdx, EndIdx) plus its position on the time axis.
// Segments exactly partition the frame sequence; a zero-frame segment is
// valid and carries no aggregate.
type Segment struct {
	SegmentIndex int     `json:"segmentIndex"`
	StartIdx     int     `json:"startIdx"`
	EndIdx       int     `json:"endIdx"`
	TimeStart    float64 `json:"timeStart"` // seconds
	TimeEnd      float64 `json:"timeEnd"`   // seconds
}

// FrameCount returns the number of frames the segment owns.
func (s Segment) FrameCount() int {
	return s.EndIdx - s.StartIdx
}

// SegmentAggregate holds the per-landmark mean position and mean confidence
// over a segment's member frames. Nil for empty segments.
type SegmentAggregate struct {
	Tip    Landmark `json:"tip"`
	Left   Landmark `json:"left"`
	Right  Landmark `json:"right"`
	Bottom Landmark `json:"bottom"`
}

// SegmentResult bundles everything computed for one segment: the segment
// bounds, its aggregate (nil when empty) and the classification outcome.
type SegmentResult struct {
	Segment   Segment              `json:"segment"`
	Aggregate *SegmentAggregate    `json:"aggregate,omitempty"`
	Result    ClassificationResult `json:"result"`
}
