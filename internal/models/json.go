package models

import (
	"encoding/json"
	"math"
)

// NaN is a legal value for landmark coordinates and derived metrics but not
// for JSON numbers, so these types marshal NaN as null and read null back
// as NaN.

func nanPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func ptrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

type landmarkJSON struct {
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Confidence *float64 `json:"confidence"`
}

// MarshalJSON encodes NaN fields as null
func (l Landmark) MarshalJSON() ([]byte, error) {
	return json.Marshal(landmarkJSON{
		X:          nanPtr(l.X),
		Y:          nanPtr(l.Y),
		Confidence: nanPtr(l.Confidence),
	})
}

// UnmarshalJSON decodes null fields as NaN
func (l *Landmark) UnmarshalJSON(data []byte) error {
	var raw landmarkJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.X = ptrNaN(raw.X)
	l.Y = ptrNaN(raw.Y)
	l.Confidence = ptrNaN(raw.Confidence)
	return nil
}

type frameMetricsJSON struct {
	FrameIndex     int      `json:"frameIndex"`
	NoseWidth      *float64 `json:"noseWidth"`
	MidpointX      *float64 `json:"midpointX"`
	TipOffset      *float64 `json:"tipOffset"`
	TipOffsetRatio *float64 `json:"tipOffsetRatio"`
	AvgConfidence  *float64 `json:"avgConfidence"`
}

// MarshalJSON encodes NaN metrics as null
func (m FrameMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(frameMetricsJSON{
		FrameIndex:     m.FrameIndex,
		NoseWidth:      nanPtr(m.NoseWidth),
		MidpointX:      nanPtr(m.MidpointX),
		TipOffset:      nanPtr(m.TipOffset),
		TipOffsetRatio: nanPtr(m.TipOffsetRatio),
		AvgConfidence:  nanPtr(m.AvgConfidence),
	})
}

// UnmarshalJSON decodes null metrics as NaN
func (m *FrameMetrics) UnmarshalJSON(data []byte) error {
	var raw frameMetricsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.FrameIndex = raw.FrameIndex
	m.NoseWidth = ptrNaN(raw.NoseWidth)
	m.MidpointX = ptrNaN(raw.MidpointX)
	m.TipOffset = ptrNaN(raw.TipOffset)
	m.TipOffsetRatio = ptrNaN(raw.TipOffsetRatio)
	m.AvgConfidence = ptrNaN(raw.AvgConfidence)
	return nil
}
