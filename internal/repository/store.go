package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

// Errors translated from PostgreSQL constraint failures.
var (
	ErrDuplicate        = errors.New("record already exists")
	ErrMissingReference = errors.New("referenced record does not exist")
)

// Tx is the record-level API available inside one enrollment transaction. Lookups that
// find nothing return sql.ErrNoRows.
type Tx interface {
	LockSection(ctx context.Context, key models.SectionKey) (*models.Section, error)
	InsertSection(ctx context.Context, section models.Section) error
	DeleteSection(ctx context.Context, key models.SectionKey) error
	UpdateSectionInstructor(ctx context.Context, key models.SectionKey, instructorID string) error
	DisableAutoEnrollment(ctx context.Context, key models.SectionKey) error
	AdjustEnrollmentCount(ctx context.Context, key models.SectionKey, delta int) error
	AdjustWaitlistCount(ctx context.Context, key models.SectionKey, delta int) error

	LockStudent(ctx context.Context, studentID string) (*models.Student, error)
	AdjustStudentWaitlistCount(ctx context.Context, studentID string, delta int) error
	ReleaseWaitlistedStudents(ctx context.Context, key models.SectionKey) (int64, error)

	FindInstructor(ctx context.Context, instructorID string) (*models.Instructor, error)

	EnrollmentExists(ctx context.Context, studentID string, key models.SectionKey) (bool, error)
	InsertEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	DeleteEnrollment(ctx context.Context, studentID string, key models.SectionKey) error
	DeleteSectionEnrollments(ctx context.Context, key models.SectionKey) (int64, error)

	WaitlistExists(ctx context.Context, studentID string, key models.SectionKey) (bool, error)
	InsertWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error
	DeleteWaitlistEntry(ctx context.Context, studentID string, key models.SectionKey) error
	ListSectionWaitlist(ctx context.Context, key models.SectionKey) ([]models.WaitlistEntry, error)
	DeleteSectionWaitlist(ctx context.Context, key models.SectionKey) (int64, error)

	InsertDropped(ctx context.Context, record *models.DroppedRecord) error
	DeleteSectionDropped(ctx context.Context, key models.SectionKey) (int64, error)
}

type txObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// EnrollmentStore runs enrollment operations as PostgreSQL transactions.
type EnrollmentStore struct {
	db      *sqlx.DB
	metrics txObserver
}

// NewEnrollmentStore constructs the store. metrics may be nil.
func NewEnrollmentStore(db *sqlx.DB, metrics txObserver) *EnrollmentStore {
	return &EnrollmentStore{db: db, metrics: metrics}
}

// WithinTx runs fn inside one transaction. The transaction commits when fn returns nil
// and rolls back when fn returns an error or panics.
func (s *EnrollmentStore) WithinTx(ctx context.Context, label string, fn func(Tx) error) (err error) {
	start := time.Now()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s transaction: %w", label, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
		if s.metrics != nil {
			s.metrics.ObserveDBQuery(label, time.Since(start))
		}
	}()

	if err = fn(NewRecords(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s transaction: %w", label, err)
	}
	return nil
}

// Records implements Tx over any sqlx executor, usually a *sqlx.Tx.
type Records struct {
	ext sqlx.ExtContext
}

// NewRecords binds record operations to ext.
func NewRecords(ext sqlx.ExtContext) *Records {
	return &Records{ext: ext}
}

var _ Tx = (*Records)(nil)

func rowsAffected(result sql.Result, what string) (int64, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check %s rows: %w", what, err)
	}
	return affected, nil
}
