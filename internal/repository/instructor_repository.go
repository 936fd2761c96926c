package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

// FindInstructor returns the instructor or sql.ErrNoRows.
func (r *Records) FindInstructor(ctx context.Context, instructorID string) (*models.Instructor, error) {
	const query = `SELECT instructor_id, first_name, last_name FROM instructors WHERE instructor_id = $1`
	var instructor models.Instructor
	if err := sqlx.GetContext(ctx, r.ext, &instructor, query, instructorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find instructor: %w", err)
	}
	return &instructor, nil
}
