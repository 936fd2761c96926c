package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

const (
	detailEnrolled          = "Student successfully enrolled in class"
	detailWaitlisted        = "Class enrollment full, Student added to waitlist"
	detailSelfDropped       = "Class successfully dropped."
	detailAdminDropped      = "Student successfully dropped."
	detailLeftWaitlist      = "Successfully removed from waitlist"
	detailWaitlistPosition  = "You are number %d on the waitlist"
	msgSectionNotFound      = "section not found"
	msgStudentNotFound      = "student not found"
	msgAlreadyEnrolled      = "student already enrolled"
	msgAlreadyWaitlisted    = "student already on waitlist"
	msgWaitlistLimitReached = "class enrollment full and student has exceeded their max number of waitlisted classes"
	msgNotEnrolled          = "student is not enrolled"
	msgNotWaitlisted        = "student not on waitlist"
)

type txRunner interface {
	WithinTx(ctx context.Context, label string, fn func(repository.Tx) error) error
}

type catalogNotifier interface {
	Invalidate(ctx context.Context)
}

// EnrollmentService moves students between seats, waitlists and the drop history.
// Every operation is one store transaction that locks the section row before any
// student row.
type EnrollmentService struct {
	store   txRunner
	catalog catalogNotifier
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(store txRunner, catalog catalogNotifier, metrics *MetricsService, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{store: store, catalog: catalog, metrics: metrics, logger: logger, now: time.Now}
}

// Enroll seats the student when the section has room and otherwise queues them on its waitlist.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID string, key models.SectionKey) (*dto.EnrollResult, error) {
	result := &dto.EnrollResult{StudentID: studentID, ClassCode: key.ClassCode, SectionNumber: key.SectionNumber}

	err := s.store.WithinTx(ctx, "enroll", func(tx repository.Tx) error {
		section, err := tx.LockSection(ctx, key)
		if err != nil {
			return lookupError(err, msgSectionNotFound, "failed to load section")
		}

		enrolled, err := tx.EnrollmentExists(ctx, studentID, key)
		if err != nil {
			return internalError(err, "failed to check enrollment")
		}
		if enrolled {
			return appErrors.Clone(appErrors.ErrConflict, msgAlreadyEnrolled)
		}
		waiting, err := tx.WaitlistExists(ctx, studentID, key)
		if err != nil {
			return internalError(err, "failed to check waitlist")
		}
		if waiting {
			return appErrors.Clone(appErrors.ErrConflict, msgAlreadyWaitlisted)
		}

		if section.HasOpenSeat() {
			enrollment := &models.Enrollment{
				StudentID:     studentID,
				ClassCode:     key.ClassCode,
				SectionNumber: key.SectionNumber,
				EnrolledAt:    s.now().UTC(),
			}
			if err := tx.InsertEnrollment(ctx, enrollment); err != nil {
				return insertError(err, msgAlreadyEnrolled, msgStudentNotFound, "failed to enroll student")
			}
			if err := tx.AdjustEnrollmentCount(ctx, key, 1); err != nil {
				return internalError(err, "failed to update enrollment count")
			}
			result.Status = dto.EnrollStatusEnrolled
			result.Detail = detailEnrolled
			return nil
		}

		student, err := tx.LockStudent(ctx, studentID)
		if err != nil {
			return lookupError(err, msgStudentNotFound, "failed to load student")
		}
		if !student.CanJoinWaitlist() {
			return appErrors.Clone(appErrors.ErrConflict, msgWaitlistLimitReached)
		}
		entry := &models.WaitlistEntry{
			StudentID:     studentID,
			ClassCode:     key.ClassCode,
			SectionNumber: key.SectionNumber,
			JoinedAt:      s.now().UTC(),
		}
		if err := tx.InsertWaitlistEntry(ctx, entry); err != nil {
			return insertError(err, msgAlreadyWaitlisted, msgStudentNotFound, "failed to add student to waitlist")
		}
		if err := tx.AdjustWaitlistCount(ctx, key, 1); err != nil {
			return internalError(err, "failed to update waitlist count")
		}
		if err := tx.AdjustStudentWaitlistCount(ctx, studentID, 1); err != nil {
			return internalError(err, "failed to update student waitlist count")
		}
		result.Status = dto.EnrollStatusWaitlisted
		result.Detail = detailWaitlisted
		return nil
	})
	if err != nil {
		return nil, s.fail("enroll", err, zap.String("student_id", studentID), sectionFields(key))
	}

	outcome := OutcomeEnrolled
	if result.Status == dto.EnrollStatusWaitlisted {
		outcome = OutcomeWaitlisted
	}
	s.succeed(ctx, "enroll", outcome, zap.String("student_id", studentID), sectionFields(key))
	return result, nil
}

// Drop removes the student's seat and appends a history row. The freed seat is not
// offered to the waitlist.
func (s *EnrollmentService) Drop(ctx context.Context, studentID string, key models.SectionKey, initiator models.DropInitiator) (*dto.DropResult, error) {
	if initiator == "" {
		initiator = models.DropInitiatorSelf
	}

	err := s.store.WithinTx(ctx, "drop", func(tx repository.Tx) error {
		if _, err := tx.LockSection(ctx, key); err != nil {
			return lookupError(err, msgNotEnrolled, "failed to load section")
		}
		if err := tx.DeleteEnrollment(ctx, studentID, key); err != nil {
			return lookupError(err, msgNotEnrolled, "failed to drop enrollment")
		}
		if err := tx.AdjustEnrollmentCount(ctx, key, -1); err != nil {
			return internalError(err, "failed to update enrollment count")
		}
		record := &models.DroppedRecord{
			StudentID:     studentID,
			ClassCode:     key.ClassCode,
			SectionNumber: key.SectionNumber,
			Initiator:     initiator,
			DroppedAt:     s.now().UTC(),
		}
		if err := tx.InsertDropped(ctx, record); err != nil {
			return internalError(err, "failed to record drop")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("drop", err, zap.String("student_id", studentID), sectionFields(key), zap.String("initiator", string(initiator)))
	}

	s.succeed(ctx, "drop", OutcomeSucceeded, zap.String("student_id", studentID), sectionFields(key), zap.String("initiator", string(initiator)))
	detail := detailSelfDropped
	if initiator == models.DropInitiatorAdministrative {
		detail = detailAdminDropped
	}
	return &dto.DropResult{
		StudentID:     studentID,
		ClassCode:     key.ClassCode,
		SectionNumber: key.SectionNumber,
		Initiator:     initiator,
		Detail:        detail,
	}, nil
}

// LeaveWaitlist removes the student from the section's waitlist.
func (s *EnrollmentService) LeaveWaitlist(ctx context.Context, studentID string, key models.SectionKey) (*dto.LeaveWaitlistResult, error) {
	err := s.store.WithinTx(ctx, "leave_waitlist", func(tx repository.Tx) error {
		if _, err := tx.LockSection(ctx, key); err != nil {
			return lookupError(err, msgNotWaitlisted, "failed to load section")
		}
		if _, err := tx.LockStudent(ctx, studentID); err != nil {
			return lookupError(err, msgNotWaitlisted, "failed to load student")
		}
		if err := tx.DeleteWaitlistEntry(ctx, studentID, key); err != nil {
			return lookupError(err, msgNotWaitlisted, "failed to remove waitlist entry")
		}
		if err := tx.AdjustWaitlistCount(ctx, key, -1); err != nil {
			return internalError(err, "failed to update waitlist count")
		}
		if err := tx.AdjustStudentWaitlistCount(ctx, studentID, -1); err != nil {
			return internalError(err, "failed to update student waitlist count")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("leave_waitlist", err, zap.String("student_id", studentID), sectionFields(key))
	}

	s.succeed(ctx, "leave_waitlist", OutcomeSucceeded, zap.String("student_id", studentID), sectionFields(key))
	return &dto.LeaveWaitlistResult{
		StudentID:     studentID,
		ClassCode:     key.ClassCode,
		SectionNumber: key.SectionNumber,
		Detail:        detailLeftWaitlist,
	}, nil
}

// RankOnWaitlist reports the student's 1-based position on the section's waitlist.
func (s *EnrollmentService) RankOnWaitlist(ctx context.Context, studentID string, key models.SectionKey) (*dto.WaitlistPosition, error) {
	var position int
	err := s.store.WithinTx(ctx, "waitlist_rank", func(tx repository.Tx) error {
		entries, err := tx.ListSectionWaitlist(ctx, key)
		if err != nil {
			return internalError(err, "failed to load waitlist")
		}
		rank, ok := WaitlistRank(entries, studentID)
		if !ok {
			return appErrors.Clone(appErrors.ErrNotFound, msgNotWaitlisted)
		}
		position = rank
		return nil
	})
	if err != nil {
		return nil, asAppError(err, "failed to rank waitlist")
	}

	return &dto.WaitlistPosition{
		StudentID:     studentID,
		ClassCode:     key.ClassCode,
		SectionNumber: key.SectionNumber,
		Position:      position,
		Detail:        fmt.Sprintf(detailWaitlistPosition, position),
	}, nil
}

func (s *EnrollmentService) succeed(ctx context.Context, operation, outcome string, fields ...zap.Field) {
	s.metrics.RecordOperation(operation, outcome)
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
	s.logger.Info(operation, append(fields, zap.String("outcome", outcome))...)
}

func (s *EnrollmentService) fail(operation string, err error, fields ...zap.Field) error {
	appErr := asAppError(err, "failed to "+operation)
	if appErr.Status >= 500 {
		s.metrics.RecordOperation(operation, OutcomeFailed)
		s.logger.Error(operation+" failed", append(fields, zap.Error(err))...)
		return appErr
	}
	s.metrics.RecordOperation(operation, OutcomeRejected)
	s.logger.Info(operation+" rejected", append(fields, zap.String("reason", appErr.Message))...)
	return appErr
}

func sectionFields(key models.SectionKey) zap.Field {
	return zap.Object("section", sectionKeyMarshaler(key))
}
