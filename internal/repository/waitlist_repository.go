package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/pkg/database"
)

// WaitlistExists reports whether the student is queued for the section.
func (r *Records) WaitlistExists(ctx context.Context, studentID string, key models.SectionKey) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM waitlist WHERE student_id = $1 AND class_code = $2 AND section_number = $3)`
	var exists bool
	if err := r.ext.QueryRowxContext(ctx, query, studentID, key.ClassCode, key.SectionNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check waitlist: %w", err)
	}
	return exists, nil
}

// InsertWaitlistEntry queues the student. A repeated entry yields ErrDuplicate.
func (r *Records) InsertWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	const query = `INSERT INTO waitlist (student_id, class_code, section_number, joined_at)
VALUES ($1, $2, $3, $4)`
	if _, err := r.ext.ExecContext(ctx, query, entry.StudentID, entry.ClassCode, entry.SectionNumber, entry.JoinedAt); err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return ErrDuplicate
		case database.IsForeignKeyViolation(err):
			return ErrMissingReference
		}
		return fmt.Errorf("insert waitlist entry: %w", err)
	}
	return nil
}

// DeleteWaitlistEntry dequeues the student or returns sql.ErrNoRows when not queued.
func (r *Records) DeleteWaitlistEntry(ctx context.Context, studentID string, key models.SectionKey) error {
	const query = `DELETE FROM waitlist WHERE student_id = $1 AND class_code = $2 AND section_number = $3`
	result, err := r.ext.ExecContext(ctx, query, studentID, key.ClassCode, key.SectionNumber)
	if err != nil {
		return fmt.Errorf("delete waitlist entry: %w", err)
	}
	affected, err := rowsAffected(result, "deleted waitlist")
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListSectionWaitlist returns the section's queue in join order.
func (r *Records) ListSectionWaitlist(ctx context.Context, key models.SectionKey) ([]models.WaitlistEntry, error) {
	const query = `SELECT student_id, class_code, section_number, joined_at
FROM waitlist WHERE class_code = $1 AND section_number = $2
ORDER BY joined_at ASC, student_id ASC`
	var entries []models.WaitlistEntry
	if err := sqlx.SelectContext(ctx, r.ext, &entries, query, key.ClassCode, key.SectionNumber); err != nil {
		return nil, fmt.Errorf("list section waitlist: %w", err)
	}
	return entries, nil
}

// DeleteSectionWaitlist removes the section's whole queue.
func (r *Records) DeleteSectionWaitlist(ctx context.Context, key models.SectionKey) (int64, error) {
	const query = `DELETE FROM waitlist WHERE class_code = $1 AND section_number = $2`
	result, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber)
	if err != nil {
		return 0, fmt.Errorf("delete section waitlist: %w", err)
	}
	return rowsAffected(result, "section waitlist")
}
