package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/pkg/export"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

const (
	catalogAvailableKey = catalogKeyPrefix + "available"
	catalogSectionsKey  = catalogKeyPrefix + "sections"
	msgInstructorAbsent = "instructor not found"
)

var rosterHeaders = []string{"student_id", "first_name", "last_name", "class_code", "section_number", "class_name"}

// QueryReader describes the read-only persistence required by QueryService.
type QueryReader interface {
	ListAvailableSections(ctx context.Context) ([]models.AvailableSection, error)
	ListSections(ctx context.Context) ([]models.Section, error)
	SectionExists(ctx context.Context, key models.SectionKey) (bool, error)
	InstructorExists(ctx context.Context, instructorID string) (bool, error)
	FindStudent(ctx context.Context, studentID string) (*models.Student, error)
	ListStudentEnrollments(ctx context.Context, studentID string) ([]models.Enrollment, error)
	ListWaitlist(ctx context.Context) ([]models.WaitlistEntry, error)
	InstructorRoster(ctx context.Context, instructorID string) ([]models.RosterEntry, error)
	DroppedForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.DroppedStudent, error)
	WaitlistForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.WaitlistedStudent, error)
}

// QueryService serves catalog and roster projections. Section listings are cached.
type QueryService struct {
	repo     QueryReader
	cache    *CacheService
	exporter *ExportService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewQueryService constructs a QueryService.
func NewQueryService(repo QueryReader, cache *CacheService, exporter *ExportService, metrics *MetricsService, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if exporter == nil {
		exporter = NewExportService(logger, nil, nil)
	}
	return &QueryService{repo: repo, cache: cache, exporter: exporter, metrics: metrics, logger: logger}
}

// ListAvailableSections returns sections with open seats. The boolean reports a cache hit.
func (s *QueryService) ListAvailableSections(ctx context.Context) ([]models.AvailableSection, bool, error) {
	var cached []models.AvailableSection
	if hit := s.fromCache(ctx, catalogAvailableKey, &cached); hit {
		return cached, true, nil
	}

	gen := s.cache.Generation()
	start := time.Now()
	sections, err := s.repo.ListAvailableSections(ctx)
	if err != nil {
		return nil, false, internalError(err, "failed to list available sections")
	}
	s.metrics.ObserveDBQuery("available_sections", time.Since(start))
	s.toCache(ctx, catalogAvailableKey, sections, gen)
	return sections, false, nil
}

// ListSections returns every section. The boolean reports a cache hit.
func (s *QueryService) ListSections(ctx context.Context) ([]models.Section, bool, error) {
	var cached []models.Section
	if hit := s.fromCache(ctx, catalogSectionsKey, &cached); hit {
		return cached, true, nil
	}

	gen := s.cache.Generation()
	start := time.Now()
	sections, err := s.repo.ListSections(ctx)
	if err != nil {
		return nil, false, internalError(err, "failed to list sections")
	}
	s.metrics.ObserveDBQuery("all_sections", time.Since(start))
	s.toCache(ctx, catalogSectionsKey, sections, gen)
	return sections, false, nil
}

// StudentDetails returns a single student.
func (s *QueryService) StudentDetails(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.repo.FindStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgStudentNotFound)
		}
		return nil, internalError(err, "failed to load student")
	}
	return student, nil
}

// StudentEnrollments lists the student's current seats.
func (s *QueryService) StudentEnrollments(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	enrollments, err := s.repo.ListStudentEnrollments(ctx, studentID)
	if err != nil {
		return nil, internalError(err, "failed to list student enrollments")
	}
	return enrollments, nil
}

// Waitlist lists every waitlist entry in join order.
func (s *QueryService) Waitlist(ctx context.Context) ([]models.WaitlistEntry, error) {
	entries, err := s.repo.ListWaitlist(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list waitlist")
	}
	return entries, nil
}

// InstructorRoster lists students enrolled in the instructor's sections. An unknown
// instructor yields an empty roster.
func (s *QueryService) InstructorRoster(ctx context.Context, instructorID string) ([]models.RosterEntry, error) {
	roster, err := s.repo.InstructorRoster(ctx, instructorID)
	if err != nil {
		return nil, internalError(err, "failed to load roster")
	}
	return roster, nil
}

// ExportRoster renders the instructor roster as csv or pdf.
func (s *QueryService) ExportRoster(ctx context.Context, instructorID, format string) (*ExportFile, error) {
	roster, err := s.InstructorRoster(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, 0, len(roster))
	for _, entry := range roster {
		rows = append(rows, map[string]string{
			"student_id":     entry.StudentID,
			"first_name":     entry.FirstName,
			"last_name":      entry.LastName,
			"class_code":     entry.ClassCode,
			"section_number": entry.SectionNumber,
			"class_name":     entry.ClassName,
		})
	}
	data := export.Dataset{Title: "Roster for instructor " + instructorID, Headers: rosterHeaders, Rows: rows}
	return s.exporter.Render(data, format, "roster_"+instructorID)
}

// DroppedForSection lists the section's drop history after checking both the section
// and the instructor exist. An instructor who does not teach the section gets an empty list.
func (s *QueryService) DroppedForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.DroppedStudent, error) {
	if err := s.ensureSectionAndInstructor(ctx, instructorID, key); err != nil {
		return nil, err
	}
	dropped, err := s.repo.DroppedForSection(ctx, instructorID, key)
	if err != nil {
		return nil, internalError(err, "failed to list dropped students")
	}
	return dropped, nil
}

// WaitlistForSection lists the section's queue in join order after checking both the
// section and the instructor exist. It is empty for an instructor who does not teach it.
func (s *QueryService) WaitlistForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.WaitlistedStudent, error) {
	if err := s.ensureSectionAndInstructor(ctx, instructorID, key); err != nil {
		return nil, err
	}
	waiting, err := s.repo.WaitlistForSection(ctx, instructorID, key)
	if err != nil {
		return nil, internalError(err, "failed to list section waitlist")
	}
	return waiting, nil
}

func (s *QueryService) ensureSectionAndInstructor(ctx context.Context, instructorID string, key models.SectionKey) error {
	found, err := s.repo.SectionExists(ctx, key)
	if err != nil {
		return internalError(err, "failed to load section")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, msgSectionNotFound)
	}
	found, err = s.repo.InstructorExists(ctx, instructorID)
	if err != nil {
		return internalError(err, "failed to load instructor")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, msgInstructorAbsent)
	}
	return nil
}

// fromCache reports a hit. Cache failures degrade to a miss.
func (s *QueryService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if !s.cache.Enabled() {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		return false
	}
	return hit
}

// toCache stores a listing read at generation gen. A listing that raced with an
// invalidation is not written back.
func (s *QueryService) toCache(ctx context.Context, key string, value interface{}, gen uint64) {
	if !s.cache.Enabled() {
		return
	}
	if s.cache.Generation() != gen {
		s.logger.Debug("skipping cache write for stale listing", zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, value, 0); err != nil {
		s.logger.Warn("cache catalog listing", zap.String("key", key), zap.Error(err))
	}
}
