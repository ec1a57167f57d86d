package service

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/houndlab/orientation-backend-go/internal/labels"
	"github.com/houndlab/orientation-backend-go/internal/models"
	"github.com/houndlab/orientation-backend-go/internal/repository"
	"github.com/houndlab/orientation-backend-go/internal/stats"
)

// ErrNotFound marks lookups of sessions or segments that do not exist.
var ErrNotFound = errors.New("not found")

// LabelService handles reviewer label edits, summaries and export
type LabelService struct {
	sessions *repository.SessionRepository
	labels   *repository.LabelRepository
}

// NewLabelService creates a new label service
func NewLabelService(sessions *repository.SessionRepository, labelRepo *repository.LabelRepository) *LabelService {
	return &LabelService{sessions: sessions, labels: labelRepo}
}

// SetManual overwrites the effective label of one segment. The automatic
// label never changes; the modified flag is derived on read.
func (s *LabelService) SetManual(sessionID int64, segmentIndex int, label string) (*models.LabelRecord, error) {
	if !models.IsAssignableLabel(label) {
		return nil, fmt.Errorf("invalid label %q", label)
	}

	if err := s.labels.UpdateManual(sessionID, segmentIndex, label); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.labels.GetBySegment(sessionID, segmentIndex)
}

// Records returns the full label table of a session, ordered by segment.
func (s *LabelService) Records(sessionID int64) ([]models.LabelRecord, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	return s.labels.GetBySession(sessionID)
}

// TiltStats summarizes the tilt angle distribution over a session
type TiltStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SessionSummary is the label distribution plus tilt statistics of one
// session's effective labels.
type SessionSummary struct {
	Segments int                 `json:"segments"`
	Modified int                 `json:"modified"`
	Labels   models.LabelSummary `json:"labels"`
	Tilt     TiltStats           `json:"tilt"`
}

// Summary computes the label distribution and tilt statistics of a session
func (s *LabelService) Summary(sessionID int64) (*SessionSummary, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}

	records, err := s.labels.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}

	modified := 0
	tilts := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.Modified {
			modified++
		}
		tilts = append(tilts, rec.TiltAngle)
	}

	return &SessionSummary{
		Segments: session.Segments,
		Modified: modified,
		Labels:   labels.Summarize(records, session.Segments),
		Tilt: TiltStats{
			Mean:   stats.Mean(tilts),
			StdDev: stats.StdDev(tilts),
			Min:    stats.Min(tilts),
			Max:    stats.Max(tilts),
		},
	}, nil
}

// csvHeader is the export row shape consumed by downstream analysis.
var csvHeader = []string{
	"segment", "time_start", "time_end", "interval",
	"orientation", "auto_predicted", "modified",
	"border_x", "border_y", "tilt_angle",
}

// WriteCSV streams the label table of a session as CSV
func (s *LabelService) WriteCSV(w io.Writer, sessionID int64) error {
	records, err := s.Records(sessionID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.SegmentIndex),
			formatFloat(rec.TimeStart),
			formatFloat(rec.TimeEnd),
			formatFloat(rec.Interval),
			rec.ManualLabel,
			rec.AutoLabel,
			strconv.FormatBool(rec.Modified),
			formatFloatPtr(rec.BorderX),
			formatFloatPtr(rec.BorderY),
			formatFloat(rec.TiltAngle),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", rec.SegmentIndex, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
