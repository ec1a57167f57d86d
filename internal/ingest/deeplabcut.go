// Package ingest parses DeepLabCut tracking exports into landmark frames.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/houndlab/orientation-backend-go/internal/models"
)

// headerRows is the number of leading non-data rows in a DeepLabCut export
// (bodypart names and coordinate labels).
const headerRows = 2

// columnsPerRow is frame index plus x/y/likelihood for four landmarks.
const columnsPerRow = 13

// DeepLabCut column order: frame, tip, right, bottom, left. Note this is
// the export order, not the tip/left/right/bottom order of the frame model.
const (
	colFrame = iota
	colTipX
	colTipY
	colTipL
	colRightX
	colRightY
	colRightL
	colBottomX
	colBottomY
	colBottomL
	colLeftX
	colLeftY
	colLeftL
)

// ParseDeepLabCut reads a DeepLabCut CSV export. Any cell that fails float
// parsing becomes NaN rather than an error, so missing detections survive
// into the pipeline as NaN coordinates; structurally short rows and empty
// input fail with a descriptive error.
func ParseDeepLabCut(r io.Reader) ([]models.LandmarkFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking csv: %w", err)
	}

	if len(rows) <= headerRows {
		return nil, fmt.Errorf("tracking csv has no data rows (got %d rows, need headers plus data)", len(rows))
	}

	frames := make([]models.LandmarkFrame, 0, len(rows)-headerRows)
	for i, row := range rows[headerRows:] {
		if len(row) < columnsPerRow {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+headerRows+1, columnsPerRow, len(row))
		}

		frame := models.LandmarkFrame{
			FrameIndex: frameIndex(row[colFrame], i),
			Tip:        landmark(row, colTipX),
			Right:      landmark(row, colRightX),
			Bottom:     landmark(row, colBottomX),
			Left:       landmark(row, colLeftX),
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

// landmark builds one landmark from three consecutive cells starting at the
// x column.
func landmark(row []string, xCol int) models.Landmark {
	return models.Landmark{
		X:          coerce(row[xCol]),
		Y:          coerce(row[xCol+1]),
		Confidence: coerce(row[xCol+2]),
	}
}

// coerce converts a cell to float64, producing NaN on failure instead of
// an error.
func coerce(cell string) float64 {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// frameIndex parses the frame column, falling back to the row ordinal when
// the cell is not numeric.
func frameIndex(cell string, ordinal int) int {
	if v, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(v) {
		return int(v)
	}
	return ordinal
}
