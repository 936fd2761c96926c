package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/middleware"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, studentID string, key models.SectionKey) (*dto.EnrollResult, error)
	Drop(ctx context.Context, studentID string, key models.SectionKey, initiator models.DropInitiator) (*dto.DropResult, error)
	LeaveWaitlist(ctx context.Context, studentID string, key models.SectionKey) (*dto.LeaveWaitlistResult, error)
	RankOnWaitlist(ctx context.Context, studentID string, key models.SectionKey) (*dto.WaitlistPosition, error)
}

type availabilityService interface {
	ListAvailableSections(ctx context.Context) ([]models.AvailableSection, bool, error)
}

// StudentHandler exposes self-service enrollment endpoints.
type StudentHandler struct {
	enrollment enrollmentService
	catalog    availabilityService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(enrollment enrollmentService, catalog availabilityService) *StudentHandler {
	return &StudentHandler{enrollment: enrollment, catalog: catalog}
}

// AvailableClasses godoc
// @Summary List sections with open seats
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/available_classes [get]
func (h *StudentHandler) AvailableClasses(c *gin.Context) {
	sections, cacheHit, err := h.catalog.ListAvailableSections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, sections, middleware.ExtractMeta(c))
}

// Enroll godoc
// @Summary Enroll in a section or join its waitlist when full
// @Tags Students
// @Produce json
// @Param student_id path string true "Student ID"
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/enroll_in_class/student/{student_id}/class/{class_code}/section/{section_number} [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	studentID, key, ok := studentSectionFromPath(c)
	if !ok {
		return
	}
	result, err := h.enrollment.Enroll(c.Request.Context(), studentID, key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// DropClass godoc
// @Summary Drop an enrolled section
// @Tags Students
// @Produce json
// @Param student_id path string true "Student ID"
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/drop_class/student/{student_id}/class/{class_code}/section/{section_number} [delete]
func (h *StudentHandler) DropClass(c *gin.Context) {
	studentID, key, ok := studentSectionFromPath(c)
	if !ok {
		return
	}
	result, err := h.enrollment.Drop(c.Request.Context(), studentID, key, models.DropInitiatorSelf)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// WaitlistPosition godoc
// @Summary Show the student's position on a section waitlist
// @Tags Students
// @Produce json
// @Param student_id path string true "Student ID"
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/waitlist_position/student/{student_id}/class/{class_code}/section/{section_number} [get]
func (h *StudentHandler) WaitlistPosition(c *gin.Context) {
	studentID, key, ok := studentSectionFromPath(c)
	if !ok {
		return
	}
	result, err := h.enrollment.RankOnWaitlist(c.Request.Context(), studentID, key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// LeaveWaitlist godoc
// @Summary Leave a section waitlist
// @Tags Students
// @Produce json
// @Param student_id path string true "Student ID"
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/remove_from_waitlist/student/{student_id}/class/{class_code}/section/{section_number} [delete]
func (h *StudentHandler) LeaveWaitlist(c *gin.Context) {
	studentID, key, ok := studentSectionFromPath(c)
	if !ok {
		return
	}
	result, err := h.enrollment.LeaveWaitlist(c.Request.Context(), studentID, key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// studentSectionFromPath writes the error response itself and reports false on failure.
func studentSectionFromPath(c *gin.Context) (string, models.SectionKey, bool) {
	studentID, err := requiredParam(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return "", models.SectionKey{}, false
	}
	key, err := sectionKeyFromPath(c)
	if err != nil {
		response.Error(c, err)
		return "", models.SectionKey{}, false
	}
	return studentID, key, true
}
