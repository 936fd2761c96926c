package service

import (
	"database/sql"
	"errors"

	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

// lookupError maps a missing row to NotFound and anything else to an internal error.
func lookupError(err error, notFound, failure string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return internalError(err, failure)
}

// insertError maps constraint failures raised by an insert.
func insertError(err error, duplicate, missing, failure string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, duplicate)
	case errors.Is(err, repository.ErrMissingReference):
		return appErrors.Clone(appErrors.ErrNotFound, missing)
	}
	return internalError(err, failure)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// asAppError passes typed errors through and wraps begin/commit failures.
func asAppError(err error, message string) *appErrors.Error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

type sectionKeyMarshaler models.SectionKey

func (k sectionKeyMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("class_code", k.ClassCode)
	enc.AddString("section_number", k.SectionNumber)
	return nil
}
