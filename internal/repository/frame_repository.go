package repository

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/houndlab/orientation-backend-go/internal/models"
)

// FrameRepository handles database operations for raw landmark frames.
// NaN coordinates are stored as NULL and restored to NaN on read, since
// sqlite REAL columns cannot hold NaN.
type FrameRepository struct {
	db *sql.DB
}

// NewFrameRepository creates a new frame repository
func NewFrameRepository(db *sql.DB) *FrameRepository {
	return &FrameRepository{db: db}
}

// SaveAll inserts the full frame sequence of a session inside a transaction
func (r *FrameRepository) SaveAll(sessionID int64, frames []models.LandmarkFrame) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin frame insert: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO frames
		(session_id, frame_index,
		 tip_x, tip_y, tip_conf,
		 left_x, left_y, left_conf,
		 right_x, right_y, right_conf,
		 bottom_x, bottom_y, bottom_conf)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		_, err := stmt.Exec(sessionID, f.FrameIndex,
			nullNaN(f.Tip.X), nullNaN(f.Tip.Y), nullNaN(f.Tip.Confidence),
			nullNaN(f.Left.X), nullNaN(f.Left.Y), nullNaN(f.Left.Confidence),
			nullNaN(f.Right.X), nullNaN(f.Right.Y), nullNaN(f.Right.Confidence),
			nullNaN(f.Bottom.X), nullNaN(f.Bottom.Y), nullNaN(f.Bottom.Confidence),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert frame %d: %w", f.FrameIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit frames: %w", err)
	}
	return nil
}

// GetBySession retrieves the frame sequence of a session, ordered by index
func (r *FrameRepository) GetBySession(sessionID int64) ([]models.LandmarkFrame, error) {
	query := `SELECT frame_index,
		tip_x, tip_y, tip_conf,
		left_x, left_y, left_conf,
		right_x, right_y, right_conf,
		bottom_x, bottom_y, bottom_conf
		FROM frames WHERE session_id = ? ORDER BY frame_index`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query frames: %w", err)
	}
	defer rows.Close()

	var frames []models.LandmarkFrame
	for rows.Next() {
		var f models.LandmarkFrame
		var v [12]sql.NullFloat64
		err := rows.Scan(&f.FrameIndex,
			&v[0], &v[1], &v[2], &v[3], &v[4], &v[5],
			&v[6], &v[7], &v[8], &v[9], &v[10], &v[11])
		if err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		f.Tip = models.Landmark{X: nanNull(v[0]), Y: nanNull(v[1]), Confidence: nanNull(v[2])}
		f.Left = models.Landmark{X: nanNull(v[3]), Y: nanNull(v[4]), Confidence: nanNull(v[5])}
		f.Right = models.Landmark{X: nanNull(v[6]), Y: nanNull(v[7]), Confidence: nanNull(v[8])}
		f.Bottom = models.Landmark{X: nanNull(v[9]), Y: nanNull(v[10]), Confidence: nanNull(v[11])}
		frames = append(frames, f)
	}

	return frames, rows.Err()
}

// nullNaN maps NaN to NULL for storage
func nullNaN(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// nanNull maps NULL back to NaN on read
func nanNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
