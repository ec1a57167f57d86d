package models

import "time"

// LabelRecord tracks the automatic and the reviewer-assigned label for one
// segment. AutoLabel is immutable after classification; ManualLabel defaults
// to AutoLabel and is only changed by explicit reviewer action.
type LabelRecord struct {
	ID           int64  `json:"id,omitempty" db:"id"`
	SessionID    int64  `json:"sessionId,omitempty" db:"session_id"`
	SegmentIndex int    `json:"segmentIndex" db:"segment_index"`
	AutoLabel    string `json:"autoLabel" db:"auto_label"`
	ManualLabel  string `json:"manualLabel" db:"manual_label"`
	Modified     bool   `json:"modified" db:"modified"`

	// Export columns
	TimeStart float64  `json:"timeStart" db:"time_start"`
	TimeEnd   float64  `json:"timeEnd" db:"time_end"`
	Interval  float64  `json:"interval" db:"interval"`
	BorderX   *float64 `json:"borderX,omitempty" db:"border_x"`
	BorderY   *float64 `json:"borderY,omitempty" db:"border_y"`
	TiltAngle float64  `json:"tiltAngle" db:"tilt_angle"`

	UpdatedAt time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// LabelCount is one summary row: how many segments carry a label and what
// share of the total that is, in percent rounded to one decimal.
type LabelCount struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// LabelSummary maps each label to its count and percentage over the
// effective (manual) labels. The four primary labels are always present.
type LabelSummary map[string]LabelCount
