package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

// LockStudent loads a student and holds its row lock until the transaction ends.
// Callers lock the section first.
func (r *Records) LockStudent(ctx context.Context, studentID string) (*models.Student, error) {
	const query = `SELECT student_id, first_name, last_name, num_waitlist FROM students WHERE student_id = $1 FOR UPDATE`
	var student models.Student
	if err := sqlx.GetContext(ctx, r.ext, &student, query, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("lock student: %w", err)
	}
	return &student, nil
}

// AdjustStudentWaitlistCount moves num_waitlist by delta, never below zero.
func (r *Records) AdjustStudentWaitlistCount(ctx context.Context, studentID string, delta int) error {
	const query = `UPDATE students SET num_waitlist = GREATEST(num_waitlist + $2, 0) WHERE student_id = $1`
	if _, err := r.ext.ExecContext(ctx, query, studentID, delta); err != nil {
		return fmt.Errorf("adjust student waitlist count: %w", err)
	}
	return nil
}

// ReleaseWaitlistedStudents decrements num_waitlist for every student queued on the
// section. It must run before the section's waitlist rows are deleted.
func (r *Records) ReleaseWaitlistedStudents(ctx context.Context, key models.SectionKey) (int64, error) {
	const query = `UPDATE students SET num_waitlist = GREATEST(num_waitlist - 1, 0)
WHERE student_id IN (SELECT student_id FROM waitlist WHERE class_code = $1 AND section_number = $2)`
	result, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber)
	if err != nil {
		return 0, fmt.Errorf("release waitlisted students: %w", err)
	}
	return rowsAffected(result, "released student")
}
