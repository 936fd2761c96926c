package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/pkg/database"
)

const sectionColumns = `class_code, section_number, class_name, department, auto_enrollment,
       max_enrollment, current_enrollment, max_waitlist, current_waitlist, instructor_id`

// LockSection loads a section and holds its row lock until the transaction ends.
func (r *Records) LockSection(ctx context.Context, key models.SectionKey) (*models.Section, error) {
	query := `SELECT ` + sectionColumns + `
FROM classes WHERE class_code = $1 AND section_number = $2 FOR UPDATE`
	var section models.Section
	if err := sqlx.GetContext(ctx, r.ext, &section, query, key.ClassCode, key.SectionNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("lock section: %w", err)
	}
	return &section, nil
}

// InsertSection persists a new section with its counters as given.
func (r *Records) InsertSection(ctx context.Context, section models.Section) error {
	const query = `INSERT INTO classes (class_code, section_number, class_name, department, auto_enrollment,
        max_enrollment, current_enrollment, max_waitlist, current_waitlist, instructor_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.ext.ExecContext(ctx, query, section.ClassCode, section.SectionNumber, section.ClassName, section.Department,
		section.AutoEnrollment, section.MaxEnrollment, section.CurrentEnrollment, section.MaxWaitlist, section.CurrentWaitlist,
		section.InstructorID); err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return ErrDuplicate
		case database.IsForeignKeyViolation(err):
			return ErrMissingReference
		}
		return fmt.Errorf("insert section: %w", err)
	}
	return nil
}

// DeleteSection removes the class row. Dependent rows must already be gone.
func (r *Records) DeleteSection(ctx context.Context, key models.SectionKey) error {
	const query = `DELETE FROM classes WHERE class_code = $1 AND section_number = $2`
	result, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	affected, err := rowsAffected(result, "deleted section")
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateSectionInstructor points the section at another instructor.
func (r *Records) UpdateSectionInstructor(ctx context.Context, key models.SectionKey, instructorID string) error {
	const query = `UPDATE classes SET instructor_id = $3 WHERE class_code = $1 AND section_number = $2`
	if _, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber, instructorID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrMissingReference
		}
		return fmt.Errorf("update section instructor: %w", err)
	}
	return nil
}

// DisableAutoEnrollment freezes automatic enrollment for the section.
func (r *Records) DisableAutoEnrollment(ctx context.Context, key models.SectionKey) error {
	const query = `UPDATE classes SET auto_enrollment = FALSE WHERE class_code = $1 AND section_number = $2`
	if _, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber); err != nil {
		return fmt.Errorf("freeze auto enrollment: %w", err)
	}
	return nil
}

// AdjustEnrollmentCount moves current_enrollment by delta, never below zero.
func (r *Records) AdjustEnrollmentCount(ctx context.Context, key models.SectionKey, delta int) error {
	const query = `UPDATE classes SET current_enrollment = GREATEST(current_enrollment + $3, 0)
WHERE class_code = $1 AND section_number = $2`
	if _, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber, delta); err != nil {
		return fmt.Errorf("adjust enrollment count: %w", err)
	}
	return nil
}

// AdjustWaitlistCount moves current_waitlist by delta, never below zero.
func (r *Records) AdjustWaitlistCount(ctx context.Context, key models.SectionKey, delta int) error {
	const query = `UPDATE classes SET current_waitlist = GREATEST(current_waitlist + $3, 0)
WHERE class_code = $1 AND section_number = $2`
	if _, err := r.ext.ExecContext(ctx, query, key.ClassCode, key.SectionNumber, delta); err != nil {
		return fmt.Errorf("adjust waitlist count: %w", err)
	}
	return nil
}
