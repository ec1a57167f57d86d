package repository

import (
	"database/sql"
	"fmt"

	"github.com/houndlab/orientation-backend-go/internal/models"
)

// LabelRepository handles database operations for per-segment label records
type LabelRepository struct {
	db *sql.DB
}

// NewLabelRepository creates a new label repository
func NewLabelRepository(db *sql.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// ReplaceForSession rewrites the full label table of a session inside a
// transaction. Used when a session is first classified and when a
// reclassification pass (new interval or mode) resets the table.
func (r *LabelRepository) ReplaceForSession(sessionID int64, records []models.LabelRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin label replace: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM label_records WHERE session_id = ?", sessionID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear label records: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO label_records
		(session_id, segment_index, auto_label, manual_label,
		 time_start, time_end, interval, border_x, border_y, tilt_angle)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare label insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(sessionID, rec.SegmentIndex, rec.AutoLabel, rec.ManualLabel,
			rec.TimeStart, rec.TimeEnd, rec.Interval, rec.BorderX, rec.BorderY, rec.TiltAngle)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert label record %d: %w", rec.SegmentIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit label records: %w", err)
	}
	return nil
}

// GetBySession retrieves all label records of a session ordered by segment
func (r *LabelRepository) GetBySession(sessionID int64) ([]models.LabelRecord, error) {
	query := `SELECT id, session_id, segment_index, auto_label, manual_label,
		time_start, time_end, interval, border_x, border_y, tilt_angle, updated_at
		FROM label_records WHERE session_id = ? ORDER BY segment_index`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query label records: %w", err)
	}
	defer rows.Close()

	var records []models.LabelRecord
	for rows.Next() {
		rec, err := scanLabelRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpdateManual overwrites the effective label of one segment
func (r *LabelRepository) UpdateManual(sessionID int64, segmentIndex int, label string) error {
	query := `UPDATE label_records
		SET manual_label = ?, updated_at = CURRENT_TIMESTAMP
		WHERE session_id = ? AND segment_index = ?`

	result, err := r.db.Exec(query, label, sessionID, segmentIndex)
	if err != nil {
		return fmt.Errorf("failed to update manual label: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check label update: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetBySegment retrieves one label record, nil when absent
func (r *LabelRepository) GetBySegment(sessionID int64, segmentIndex int) (*models.LabelRecord, error) {
	query := `SELECT id, session_id, segment_index, auto_label, manual_label,
		time_start, time_end, interval, border_x, border_y, tilt_angle, updated_at
		FROM label_records WHERE session_id = ? AND segment_index = ?`

	rows, err := r.db.Query(query, sessionID, segmentIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to query label record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	rec, err := scanLabelRecord(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanLabelRecord(rows *sql.Rows) (models.LabelRecord, error) {
	var rec models.LabelRecord
	var borderX, borderY sql.NullFloat64
	err := rows.Scan(&rec.ID, &rec.SessionID, &rec.SegmentIndex, &rec.AutoLabel, &rec.ManualLabel,
		&rec.TimeStart, &rec.TimeEnd, &rec.Interval, &borderX, &borderY, &rec.TiltAngle, &rec.UpdatedAt)
	if err != nil {
		return rec, fmt.Errorf("failed to scan label record: %w", err)
	}
	if borderX.Valid {
		rec.BorderX = &borderX.Float64
	}
	if borderY.Valid {
		rec.BorderY = &borderY.Float64
	}
	rec.Modified = rec.ManualLabel != rec.AutoLabel
	return rec, nil
}
