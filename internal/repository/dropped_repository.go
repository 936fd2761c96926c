package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

// InsertDropped appends a history row. An empty ID is filled with a new UUID.
func (r *Records) InsertDropped(ctx context.Context, record *models.DroppedRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `INSERT INTO dropped (id, student_id, class_code, section_number, initiator, dropped_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.ext.ExecContext(ctx, query, record.ID, record.StudentID, record.ClassCode, record.SectionNumber, record.Initiator, record.DroppedAt); err != nil {
		return fmt.Errorf("insert dropped record: %w", err)
	}
	return nil
}

// DeleteSectionDropped clears the section's history when the section is removed.
func (r *Records) DeleteSectionDropped(ctx context.Context, key models.SectionKey) (int64, error) {
	const query = `DELETE FROM dropped WHERE class_code = $1 AND section_number = $2`
	result, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber)
	if err != nil {
		return 0, fmt.Errorf("delete section dropped records: %w", err)
	}
	return rowsAffected(result, "section dropped")
}
