package handler

import (
	"context"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/service"
)

type enrollmentServiceMock struct {
	enrollResp *dto.EnrollResult
	enrollErr  error
	dropResp   *dto.DropResult
	dropErr    error
	leaveResp  *dto.LeaveWaitlistResult
	leaveErr   error
	rankResp   *dto.WaitlistPosition
	rankErr    error

	lastStudent   string
	lastKey       models.SectionKey
	lastInitiator models.DropInitiator
}

func (m *enrollmentServiceMock) Enroll(ctx context.Context, studentID string, key models.SectionKey) (*dto.EnrollResult, error) {
	m.lastStudent, m.lastKey = studentID, key
	return m.enrollResp, m.enrollErr
}

func (m *enrollmentServiceMock) Drop(ctx context.Context, studentID string, key models.SectionKey, initiator models.DropInitiator) (*dto.DropResult, error) {
	m.lastStudent, m.lastKey, m.lastInitiator = studentID, key, initiator
	return m.dropResp, m.dropErr
}

func (m *enrollmentServiceMock) LeaveWaitlist(ctx context.Context, studentID string, key models.SectionKey) (*dto.LeaveWaitlistResult, error) {
	m.lastStudent, m.lastKey = studentID, key
	return m.leaveResp, m.leaveErr
}

func (m *enrollmentServiceMock) RankOnWaitlist(ctx context.Context, studentID string, key models.SectionKey) (*dto.WaitlistPosition, error) {
	m.lastStudent, m.lastKey = studentID, key
	return m.rankResp, m.rankErr
}

type queryServiceMock struct {
	available   []models.AvailableSection
	sections    []models.Section
	cacheHit    bool
	student     *models.Student
	enrollments []models.Enrollment
	waitlist    []models.WaitlistEntry
	roster      []models.RosterEntry
	exportFile  *service.ExportFile
	dropped     []models.DroppedStudent
	waiting     []models.WaitlistedStudent
	err         error
	lastFormat  string
	lastInstrID string
	lastKey     models.SectionKey
}

func (m *queryServiceMock) ListAvailableSections(ctx context.Context) ([]models.AvailableSection, bool, error) {
	return m.available, m.cacheHit, m.err
}

func (m *queryServiceMock) ListSections(ctx context.Context) ([]models.Section, bool, error) {
	return m.sections, m.cacheHit, m.err
}

func (m *queryServiceMock) StudentDetails(ctx context.Context, studentID string) (*models.Student, error) {
	return m.student, m.err
}

func (m *queryServiceMock) StudentEnrollments(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	return m.enrollments, m.err
}

func (m *queryServiceMock) Waitlist(ctx context.Context) ([]models.WaitlistEntry, error) {
	return m.waitlist, m.err
}

func (m *queryServiceMock) InstructorRoster(ctx context.Context, instructorID string) ([]models.RosterEntry, error) {
	m.lastInstrID = instructorID
	return m.roster, m.err
}

func (m *queryServiceMock) ExportRoster(ctx context.Context, instructorID, format string) (*service.ExportFile, error) {
	m.lastInstrID, m.lastFormat = instructorID, format
	return m.exportFile, m.err
}

func (m *queryServiceMock) DroppedForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.DroppedStudent, error) {
	m.lastInstrID, m.lastKey = instructorID, key
	return m.dropped, m.err
}

func (m *queryServiceMock) WaitlistForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.WaitlistedStudent, error) {
	m.lastInstrID, m.lastKey = instructorID, key
	return m.waiting, m.err
}

type sectionServiceMock struct {
	result         *dto.SectionChangeResult
	err            error
	lastRequest    dto.CreateSectionRequest
	lastKey        models.SectionKey
	lastInstructor string
	called         string
}

func (m *sectionServiceMock) Create(ctx context.Context, req dto.CreateSectionRequest) (*dto.SectionChangeResult, error) {
	m.called, m.lastRequest = "create", req
	return m.result, m.err
}

func (m *sectionServiceMock) Remove(ctx context.Context, key models.SectionKey) (*dto.SectionChangeResult, error) {
	m.called, m.lastKey = "remove", key
	return m.result, m.err
}

func (m *sectionServiceMock) ReassignInstructor(ctx context.Context, key models.SectionKey, instructorID string) (*dto.SectionChangeResult, error) {
	m.called, m.lastKey, m.lastInstructor = "reassign", key, instructorID
	return m.result, m.err
}

func (m *sectionServiceMock) FreezeAutoEnrollment(ctx context.Context, key models.SectionKey) (*dto.SectionChangeResult, error) {
	m.called, m.lastKey = "freeze", key
	return m.result, m.err
}
