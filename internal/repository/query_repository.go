package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

// QueryRepository serves read-only listings outside engine transactions.
type QueryRepository struct {
	db *sqlx.DB
}

// NewQueryRepository constructs a QueryRepository.
func NewQueryRepository(db *sqlx.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

// ListAvailableSections returns sections with open seats and their instructor names.
func (r *QueryRepository) ListAvailableSections(ctx context.Context) ([]models.AvailableSection, error) {
	const query = `SELECT c.class_code, c.section_number, c.class_name,
       i.first_name AS instructor_first_name, i.last_name AS instructor_last_name,
       c.current_enrollment, c.max_enrollment
FROM classes c
JOIN instructors i ON i.instructor_id = c.instructor_id
WHERE c.current_enrollment < c.max_enrollment
ORDER BY c.class_code, c.section_number`
	sections := make([]models.AvailableSection, 0)
	if err := r.db.SelectContext(ctx, &sections, query); err != nil {
		return nil, fmt.Errorf("list available sections: %w", err)
	}
	return sections, nil
}

// ListSections returns every section.
func (r *QueryRepository) ListSections(ctx context.Context) ([]models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM classes ORDER BY class_code, section_number`
	sections := make([]models.Section, 0)
	if err := r.db.SelectContext(ctx, &sections, query); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// SectionExists reports whether the section key is present.
func (r *QueryRepository) SectionExists(ctx context.Context, key models.SectionKey) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM classes WHERE class_code = $1 AND section_number = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, key.ClassCode, key.SectionNumber); err != nil {
		return false, fmt.Errorf("check section: %w", err)
	}
	return exists, nil
}

// InstructorExists reports whether the instructor is present.
func (r *QueryRepository) InstructorExists(ctx context.Context, instructorID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM instructors WHERE instructor_id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, instructorID); err != nil {
		return false, fmt.Errorf("check instructor: %w", err)
	}
	return exists, nil
}

// FindStudent returns the student or sql.ErrNoRows.
func (r *QueryRepository) FindStudent(ctx context.Context, studentID string) (*models.Student, error) {
	const query = `SELECT student_id, first_name, last_name, num_waitlist FROM students WHERE student_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// ListStudentEnrollments returns the sections the student holds seats in.
func (r *QueryRepository) ListStudentEnrollments(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	const query = `SELECT student_id, class_code, section_number, enrolled_at
FROM enrollments WHERE student_id = $1 ORDER BY class_code, section_number`
	enrollments := make([]models.Enrollment, 0)
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return enrollments, nil
}

// ListWaitlist returns every waitlist row in join order.
func (r *QueryRepository) ListWaitlist(ctx context.Context) ([]models.WaitlistEntry, error) {
	const query = `SELECT student_id, class_code, section_number, joined_at
FROM waitlist ORDER BY joined_at ASC, student_id ASC`
	entries := make([]models.WaitlistEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list waitlist: %w", err)
	}
	return entries, nil
}

// InstructorRoster returns the students enrolled in any of the instructor's sections.
func (r *QueryRepository) InstructorRoster(ctx context.Context, instructorID string) ([]models.RosterEntry, error) {
	const query = `SELECT s.student_id, s.first_name, s.last_name, c.class_code, c.section_number, c.class_name
FROM enrollments e
JOIN classes c ON c.class_code = e.class_code AND c.section_number = e.section_number
JOIN students s ON s.student_id = e.student_id
WHERE c.instructor_id = $1
ORDER BY c.class_code, c.section_number, s.last_name, s.first_name`
	roster := make([]models.RosterEntry, 0)
	if err := r.db.SelectContext(ctx, &roster, query, instructorID); err != nil {
		return nil, fmt.Errorf("instructor roster: %w", err)
	}
	return roster, nil
}

// DroppedForSection returns the section's drop history with student names. Rows are only
// returned when instructorID teaches the section.
func (r *QueryRepository) DroppedForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.DroppedStudent, error) {
	const query = `SELECT d.student_id, s.first_name, s.last_name, d.class_code, d.section_number, d.initiator, d.dropped_at
FROM dropped d
JOIN classes c ON c.class_code = d.class_code AND c.section_number = d.section_number AND c.instructor_id = $3
JOIN students s ON s.student_id = d.student_id
WHERE d.class_code = $1 AND d.section_number = $2
ORDER BY d.dropped_at ASC`
	dropped := make([]models.DroppedStudent, 0)
	if err := r.db.SelectContext(ctx, &dropped, query, key.ClassCode, key.SectionNumber, instructorID); err != nil {
		return nil, fmt.Errorf("dropped for section: %w", err)
	}
	return dropped, nil
}

// WaitlistForSection returns the section's queue with student names in join order, scoped
// to the instructor teaching it.
func (r *QueryRepository) WaitlistForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.WaitlistedStudent, error) {
	const query = `SELECT w.student_id, s.first_name, s.last_name, w.class_code, w.section_number, w.joined_at
FROM waitlist w
JOIN classes c ON c.class_code = w.class_code AND c.section_number = w.section_number AND c.instructor_id = $3
JOIN students s ON s.student_id = w.student_id
WHERE w.class_code = $1 AND w.section_number = $2
ORDER BY w.joined_at ASC, w.student_id ASC`
	waiting := make([]models.WaitlistedStudent, 0)
	if err := r.db.SelectContext(ctx, &waiting, query, key.ClassCode, key.SectionNumber, instructorID); err != nil {
		return nil, fmt.Errorf("waitlist for section: %w", err)
	}
	return waiting, nil
}
