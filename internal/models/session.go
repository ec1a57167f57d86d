package models

import "time"

// Session represents one labeling session: an uploaded tracking file, the
// segmentation parameters it was classified under, and bookkeeping for the
// label table derived from it.
type Session struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	FrameCount int     `json:"frameCount" db:"frame_count"`
	FPS        float64 `json:"fps" db:"fps"`
	Duration   float64 `json:"duration" db:"duration"` // seconds
	Interval   float64 `json:"interval" db:"interval"` // seconds per segment
	Mode       string  `json:"mode" db:"mode"`         // ratio or ray
	Segments   int     `json:"segments" db:"segments"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SessionFilter represents filter parameters for listing sessions
type SessionFilter struct {
	Name     string `form:"name"`
	Mode     string `form:"mode"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// MetricsFilter represents pagination parameters for per-frame metrics
type MetricsFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}
