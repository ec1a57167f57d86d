package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/houndlab/orientation-backend-go/internal/labels"
	"github.com/houndlab/orientation-backend-go/internal/models"
	"github.com/houndlab/orientation-backend-go/internal/orientation"
	"github.com/houndlab/orientation-backend-go/internal/repository"
)

// SessionService orchestrates labeling sessions: parse -> derive ->
// aggregate -> classify -> seed -> persist.
type SessionService struct {
	sessions *repository.SessionRepository
	frames   *repository.FrameRepository
	labels   *repository.LabelRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessions *repository.SessionRepository, frames *repository.FrameRepository, labelRepo *repository.LabelRepository) *SessionService {
	return &SessionService{sessions: sessions, frames: frames, labels: labelRepo}
}

// CreateSessionInput carries everything needed to start a labeling session.
// Either FPS or Duration must be positive; the other is derived from the
// frame count.
type CreateSessionInput struct {
	Name     string
	Frames   []models.LandmarkFrame
	FPS      float64
	Duration float64
	Interval float64
	Mode     string
	Params   orientation.Params
}

// Create runs the classification pipeline over the uploaded frames, seeds
// the label table with the automatic labels and persists everything.
func (s *SessionService) Create(in CreateSessionInput) (*models.Session, []models.SegmentResult, error) {
	if len(in.Frames) == 0 {
		return nil, nil, fmt.Errorf("session has no frames")
	}

	fps, duration, err := resolveTimebase(len(in.Frames), in.FPS, in.Duration)
	if err != nil {
		return nil, nil, err
	}

	params := in.Params
	params.FPS = fps
	params.Interval = in.Interval

	results, err := classify(in.Frames, in.Mode, params)
	if err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		Name:       in.Name,
		FrameCount: len(in.Frames),
		FPS:        fps,
		Duration:   duration,
		Interval:   in.Interval,
		Mode:       in.Mode,
		Segments:   len(results),
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode session params: %w", err)
	}

	if err := s.sessions.Create(session, string(paramsJSON)); err != nil {
		return nil, nil, err
	}
	if err := s.frames.SaveAll(session.ID, in.Frames); err != nil {
		return nil, nil, err
	}
	if err := s.labels.ReplaceForSession(session.ID, seedRecords(results, in.Interval)); err != nil {
		return nil, nil, err
	}

	log.Printf("Created session %d (%s): %d frames, %d segments, mode=%s interval=%gs",
		session.ID, session.Name, session.FrameCount, session.Segments, session.Mode, session.Interval)
	return session, results, nil
}

// Reclassify reruns the pipeline over a session's stored frames with a new
// interval, mode or parameter set. The label table is reseeded from the new
// automatic labels; manual edits from the previous pass are discarded, as a
// different segmentation has no frame-accurate mapping to the old one.
func (s *SessionService) Reclassify(id int64, interval float64, mode string, params orientation.Params) (*models.Session, []models.SegmentResult, error) {
	session, err := s.sessions.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrNotFound
	}

	frames, err := s.frames.GetBySession(id)
	if err != nil {
		return nil, nil, err
	}

	params.FPS = session.FPS
	params.Interval = interval

	results, err := classify(frames, mode, params)
	if err != nil {
		return nil, nil, err
	}

	session.Interval = interval
	session.Mode = mode
	session.Segments = len(results)

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode session params: %w", err)
	}
	if err := s.sessions.Update(session, string(paramsJSON)); err != nil {
		return nil, nil, err
	}
	if err := s.labels.ReplaceForSession(id, seedRecords(results, interval)); err != nil {
		return nil, nil, err
	}

	log.Printf("Reclassified session %d: %d segments, mode=%s interval=%gs",
		id, session.Segments, mode, interval)
	return session, results, nil
}

// List retrieves sessions with filtering and pagination
func (s *SessionService) List(filter models.SessionFilter) ([]models.Session, int64, error) {
	return s.sessions.List(filter)
}

// Get retrieves a single session
func (s *SessionService) Get(id int64) (*models.Session, error) {
	return s.sessions.GetByID(id)
}

// Delete removes a session and its frames and labels
func (s *SessionService) Delete(id int64) error {
	if err := s.sessions.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Results recomputes the per-segment classification of a session from its
// stored frames and parameters. The pipeline is pure and linear in frame
// count, so recomputing beats persisting aggregates.
func (s *SessionService) Results(id int64) (*models.Session, []models.SegmentResult, error) {
	session, err := s.sessions.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrNotFound
	}

	frames, err := s.frames.GetBySession(id)
	if err != nil {
		return nil, nil, err
	}

	params, err := s.loadParams(id, session)
	if err != nil {
		return nil, nil, err
	}

	results, err := classify(frames, session.Mode, params)
	if err != nil {
		return nil, nil, err
	}
	return session, results, nil
}

// Metrics returns the per-frame derived metrics of a session, paginated.
func (s *SessionService) Metrics(id int64, filter models.MetricsFilter) (*models.FrameMetricsResponse, error) {
	session, err := s.sessions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}

	frames, err := s.frames.GetBySession(id)
	if err != nil {
		return nil, err
	}
	metrics := orientation.DeriveAll(frames)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 1000
	}

	total := len(metrics)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	totalPages := total / filter.PageSize
	if total%filter.PageSize > 0 {
		totalPages++
	}

	return &models.FrameMetricsResponse{
		Data:       metrics[start:end],
		Total:      int64(total),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *SessionService) loadParams(id int64, session *models.Session) (orientation.Params, error) {
	params := orientation.DefaultParams()
	raw, err := s.sessions.GetParamsJSON(id)
	if err != nil {
		return params, err
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return params, fmt.Errorf("failed to decode session params: %w", err)
		}
	}
	params.FPS = session.FPS
	params.Interval = session.Interval
	return params, nil
}

// classify builds a pipeline and runs it.
func classify(frames []models.LandmarkFrame, mode string, params orientation.Params) ([]models.SegmentResult, error) {
	pipeline, err := orientation.NewPipeline(mode, params)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(frames)
}

// resolveTimebase derives the missing one of fps/duration from the frame
// count. At least one must be positive.
func resolveTimebase(frameCount int, fps, duration float64) (float64, float64, error) {
	switch {
	case fps > 0:
		return fps, float64(frameCount) / fps, nil
	case duration > 0:
		return float64(frameCount) / duration, duration, nil
	}
	return 0, 0, fmt.Errorf("either fps or video duration must be positive")
}

// seedRecords builds the initial label table from classification results:
// manual label starts equal to the automatic one, exactly as the in-memory
// store seeds it.
func seedRecords(results []models.SegmentResult, interval float64) []models.LabelRecord {
	store := labels.NewStore(len(results))
	for _, res := range results {
		store.Seed(res.Segment.SegmentIndex, res.Result.Label)
	}

	records := store.Export()
	for i := range records {
		res := results[records[i].SegmentIndex]
		records[i].TimeStart = res.Segment.TimeStart
		records[i].TimeEnd = res.Segment.TimeEnd
		records[i].Interval = interval
		records[i].TiltAngle = res.Result.TiltAngle
		if bp := res.Result.BorderPoint; bp != nil {
			records[i].BorderX = &bp.X
			records[i].BorderY = &bp.Y
		}
	}
	return records
}
