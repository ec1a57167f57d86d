package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/houndlab/orientation-backend-go/internal/models"
)

// SessionRepository handles database operations for labeling sessions
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session and sets its ID
func (r *SessionRepository) Create(s *models.Session, paramsJSON string) error {
	query := `INSERT INTO sessions (name, frame_count, fps, duration, interval, mode, segments, params_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query, s.Name, s.FrameCount, s.FPS, s.Duration, s.Interval, s.Mode, s.Segments, paramsJSON)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get session id: %w", err)
	}
	s.ID = id
	return nil
}

// Update rewrites the mutable session fields after a reclassification pass
func (r *SessionRepository) Update(s *models.Session, paramsJSON string) error {
	query := `UPDATE sessions
		SET fps = ?, duration = ?, interval = ?, mode = ?, segments = ?, params_json = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	_, err := r.db.Exec(query, s.FPS, s.Duration, s.Interval, s.Mode, s.Segments, paramsJSON, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// List retrieves sessions with filtering and pagination
func (r *SessionRepository) List(filter models.SessionFilter) ([]models.Session, int64, error) {
	query := `SELECT id, name, frame_count, fps, duration, interval, mode, segments, created_at, updated_at
		FROM sessions`

	var conditions []string
	var args []interface{}

	if filter.Name != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Mode != "" {
		conditions = append(conditions, "mode = ?")
		args = append(args, filter.Mode)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM sessions"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		err := rows.Scan(&s.ID, &s.Name, &s.FrameCount, &s.FPS, &s.Duration, &s.Interval,
			&s.Mode, &s.Segments, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}

// GetByID retrieves a single session by ID, nil when absent
func (r *SessionRepository) GetByID(id int64) (*models.Session, error) {
	query := `SELECT id, name, frame_count, fps, duration, interval, mode, segments, created_at, updated_at
		FROM sessions WHERE id = ?`

	var s models.Session
	err := r.db.QueryRow(query, id).Scan(&s.ID, &s.Name, &s.FrameCount, &s.FPS, &s.Duration,
		&s.Interval, &s.Mode, &s.Segments, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

// GetParamsJSON retrieves the stored classifier parameters for a session
func (r *SessionRepository) GetParamsJSON(id int64) (string, error) {
	var params string
	err := r.db.QueryRow("SELECT params_json FROM sessions WHERE id = ?", id).Scan(&params)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session params: %w", err)
	}
	return params, nil
}

// Delete removes a session; frames and label records cascade
func (r *SessionRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
