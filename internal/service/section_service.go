package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

const (
	detailSectionCreated    = "New class successfully added."
	detailSectionRemoved    = "Section successfully removed."
	detailInstructorChanged = "Instructor successfully changed"
	detailFrozen            = "auto enrollment successfully frozen."
	msgSectionExists        = "class already exists"
	msgSectionMissing       = "section does not exist"
	msgInstructorMissing    = "instructor does not exist"
)

// SectionService implements registrar operations on sections.
type SectionService struct {
	store     txRunner
	catalog   catalogNotifier
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewSectionService constructs a SectionService.
func NewSectionService(store txRunner, catalog catalogNotifier, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *SectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{store: store, catalog: catalog, validator: validate, metrics: metrics, logger: logger}
}

// Create inserts a new section with the counters supplied by the caller.
func (s *SectionService) Create(ctx context.Context, req dto.CreateSectionRequest) (*dto.SectionChangeResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	section := req.Section()
	key := section.Key()

	err := s.store.WithinTx(ctx, "create_section", func(tx repository.Tx) error {
		_, err := tx.LockSection(ctx, key)
		switch {
		case err == nil:
			return appErrors.Clone(appErrors.ErrConflict, msgSectionExists)
		case !errors.Is(err, sql.ErrNoRows):
			return internalError(err, "failed to load section")
		}
		if err := tx.InsertSection(ctx, section); err != nil {
			return insertError(err, msgSectionExists, msgInstructorMissing, "failed to create section")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("create_section", err, key)
	}

	s.succeed(ctx, "create_section", key)
	return &dto.SectionChangeResult{
		ClassCode:     key.ClassCode,
		SectionNumber: key.SectionNumber,
		InstructorID:  section.InstructorID,
		Section:       &section,
		Detail:        detailSectionCreated,
	}, nil
}

// Remove deletes the section along with its enrollments, waitlist and drop history.
// Waitlisted students get their waitlist slot back.
func (s *SectionService) Remove(ctx context.Context, key models.SectionKey) (*dto.SectionChangeResult, error) {
	var released, enrollments, waitlisted, dropped int64
	err := s.store.WithinTx(ctx, "remove_section", func(tx repository.Tx) error {
		if _, err := tx.LockSection(ctx, key); err != nil {
			return lookupError(err, msgSectionMissing, "failed to load section")
		}
		var err error
		if released, err = tx.ReleaseWaitlistedStudents(ctx, key); err != nil {
			return internalError(err, "failed to release waitlisted students")
		}
		if waitlisted, err = tx.DeleteSectionWaitlist(ctx, key); err != nil {
			return internalError(err, "failed to delete waitlist")
		}
		if enrollments, err = tx.DeleteSectionEnrollments(ctx, key); err != nil {
			return internalError(err, "failed to delete enrollments")
		}
		if dropped, err = tx.DeleteSectionDropped(ctx, key); err != nil {
			return internalError(err, "failed to delete drop history")
		}
		if err := tx.DeleteSection(ctx, key); err != nil {
			return lookupError(err, msgSectionMissing, "failed to delete section")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("remove_section", err, key)
	}

	s.succeed(ctx, "remove_section", key,
		zap.Int64("released_students", released),
		zap.Int64("enrollments", enrollments),
		zap.Int64("waitlist", waitlisted),
		zap.Int64("dropped", dropped),
	)
	return &dto.SectionChangeResult{ClassCode: key.ClassCode, SectionNumber: key.SectionNumber, Detail: detailSectionRemoved}, nil
}

// ReassignInstructor points the section at another existing instructor.
func (s *SectionService) ReassignInstructor(ctx context.Context, key models.SectionKey, instructorID string) (*dto.SectionChangeResult, error) {
	err := s.store.WithinTx(ctx, "reassign_instructor", func(tx repository.Tx) error {
		if _, err := tx.LockSection(ctx, key); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrBadRequest, msgSectionMissing)
			}
			return internalError(err, "failed to load section")
		}
		if _, err := tx.FindInstructor(ctx, instructorID); err != nil {
			return lookupError(err, msgInstructorMissing, "failed to load instructor")
		}
		if err := tx.UpdateSectionInstructor(ctx, key, instructorID); err != nil {
			return insertError(err, msgSectionExists, msgInstructorMissing, "failed to update instructor")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("reassign_instructor", err, key, zap.String("instructor_id", instructorID))
	}

	s.succeed(ctx, "reassign_instructor", key, zap.String("instructor_id", instructorID))
	return &dto.SectionChangeResult{
		ClassCode:     key.ClassCode,
		SectionNumber: key.SectionNumber,
		InstructorID:  instructorID,
		Detail:        detailInstructorChanged,
	}, nil
}

// FreezeAutoEnrollment clears the section's auto_enrollment flag. Enroll does not consult it.
func (s *SectionService) FreezeAutoEnrollment(ctx context.Context, key models.SectionKey) (*dto.SectionChangeResult, error) {
	err := s.store.WithinTx(ctx, "freeze_enrollment", func(tx repository.Tx) error {
		if _, err := tx.LockSection(ctx, key); err != nil {
			return lookupError(err, msgSectionMissing, "failed to load section")
		}
		if err := tx.DisableAutoEnrollment(ctx, key); err != nil {
			return internalError(err, "failed to freeze auto enrollment")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("freeze_enrollment", err, key)
	}

	s.succeed(ctx, "freeze_enrollment", key)
	return &dto.SectionChangeResult{ClassCode: key.ClassCode, SectionNumber: key.SectionNumber, Detail: detailFrozen}, nil
}

func (s *SectionService) succeed(ctx context.Context, operation string, key models.SectionKey, fields ...zap.Field) {
	s.metrics.RecordOperation(operation, OutcomeSucceeded)
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
	s.logger.Info(operation, append(fields, sectionFields(key))...)
}

func (s *SectionService) fail(operation string, err error, key models.SectionKey, fields ...zap.Field) error {
	appErr := asAppError(err, "failed to "+operation)
	fields = append(fields, sectionFields(key))
	if appErr.Status >= 500 {
		s.metrics.RecordOperation(operation, OutcomeFailed)
		s.logger.Error(operation+" failed", append(fields, zap.Error(err))...)
		return appErr
	}
	s.metrics.RecordOperation(operation, OutcomeRejected)
	s.logger.Info(operation+" rejected", append(fields, zap.String("reason", appErr.Message))...)
	return appErr
}
