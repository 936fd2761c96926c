package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/pkg/database"
)

// EnrollmentExists reports whether the student holds a seat in the section.
func (r *Records) EnrollmentExists(ctx context.Context, studentID string, key models.SectionKey) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND class_code = $2 AND section_number = $3)`
	var exists bool
	if err := r.ext.QueryRowxContext(ctx, query, studentID, key.ClassCode, key.SectionNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return exists, nil
}

// InsertEnrollment records a seat. A repeated seat yields ErrDuplicate.
func (r *Records) InsertEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments (student_id, class_code, section_number, enrolled_at)
VALUES ($1, $2, $3, $4)`
	if _, err := r.ext.ExecContext(ctx, query, enrollment.StudentID, enrollment.ClassCode, enrollment.SectionNumber, enrollment.EnrolledAt); err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return ErrDuplicate
		case database.IsForeignKeyViolation(err):
			return ErrMissingReference
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

// DeleteEnrollment removes a seat or returns sql.ErrNoRows when none existed.
func (r *Records) DeleteEnrollment(ctx context.Context, studentID string, key models.SectionKey) error {
	const query = `DELETE FROM enrollments WHERE student_id = $1 AND class_code = $2 AND section_number = $3`
	result, err := r.ext.ExecContext(ctx, query, studentID, key.ClassCode, key.SectionNumber)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	affected, err := rowsAffected(result, "deleted enrollment")
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteSectionEnrollments removes every seat of the section.
func (r *Records) DeleteSectionEnrollments(ctx context.Context, key models.SectionKey) (int64, error) {
	const query = `DELETE FROM enrollments WHERE class_code = $1 AND section_number = $2`
	result, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber)
	if err != nil {
		return 0, fmt.Errorf("delete section enrollments: %w", err)
	}
	return rowsAffected(result, "section enrollment")
}
