package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/service"
	"github.com/noah-isme/course-enrollment-api/pkg/response"
)

type instructorQueries interface {
	InstructorRoster(ctx context.Context, instructorID string) ([]models.RosterEntry, error)
	ExportRoster(ctx context.Context, instructorID, format string) (*service.ExportFile, error)
	DroppedForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.DroppedStudent, error)
	WaitlistForSection(ctx context.Context, instructorID string, key models.SectionKey) ([]models.WaitlistedStudent, error)
}

// InstructorHandler exposes roster views and administrative drops.
type InstructorHandler struct {
	queries    instructorQueries
	enrollment enrollmentService
}

// NewInstructorHandler constructs InstructorHandler.
func NewInstructorHandler(queries instructorQueries, enrollment enrollmentService) *InstructorHandler {
	return &InstructorHandler{queries: queries, enrollment: enrollment}
}

// Roster godoc
// @Summary List students enrolled in the instructor's sections
// @Tags Instructors
// @Produce json
// @Param instructor_id path string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructor/enrollment/instructor/{instructor_id} [get]
func (h *InstructorHandler) Roster(c *gin.Context) {
	instructorID, err := requiredParam(c, "instructor_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	roster, err := h.queries.InstructorRoster(c.Request.Context(), instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}

// ExportRoster godoc
// @Summary Download the instructor roster
// @Tags Instructors
// @Produce text/csv
// @Produce application/pdf
// @Param instructor_id path string true "Instructor ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /instructor/enrollment/instructor/{instructor_id}/export [get]
func (h *InstructorHandler) ExportRoster(c *gin.Context) {
	instructorID, err := requiredParam(c, "instructor_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.queries.ExportRoster(c.Request.Context(), instructorID, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// Dropped godoc
// @Summary List students dropped from a section
// @Tags Instructors
// @Produce json
// @Param instructor_id path string true "Instructor ID"
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instructor/dropped/instructor/{instructor_id}/class/{class_code}/section/{section_number} [get]
func (h *InstructorHandler) Dropped(c *gin.Context) {
	instructorID, key, ok := instructorSectionFromPath(c)
	if !ok {
		return
	}
	dropped, err := h.queries.DroppedForSection(c.Request.Context(), instructorID, key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dropped)
}

// DropStudent godoc
// @Summary Administratively drop a student from a section
// @Tags Instructors
// @Produce json
// @Param student_id path string true "Student ID"
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instructor/drop_student/student/{student_id}/class/{class_code}/section/{section_number} [delete]
func (h *InstructorHandler) DropStudent(c *gin.Context) {
	studentID, key, ok := studentSectionFromPath(c)
	if !ok {
		return
	}
	result, err := h.enrollment.Drop(c.Request.Context(), studentID, key, models.DropInitiatorAdministrative)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Waitlist godoc
// @Summary List a section's waitlist in join order
// @Tags Instructors
// @Produce json
// @Param instructor_id path string true "Instructor ID"
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instructor/waitlist_for_class/instructor/{instructor_id}/class/{class_code}/section/{section_number} [get]
func (h *InstructorHandler) Waitlist(c *gin.Context) {
	instructorID, key, ok := instructorSectionFromPath(c)
	if !ok {
		return
	}
	waiting, err := h.queries.WaitlistForSection(c.Request.Context(), instructorID, key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, waiting)
}

func instructorSectionFromPath(c *gin.Context) (string, models.SectionKey, bool) {
	instructorID, err := requiredParam(c, "instructor_id")
	if err != nil {
		response.Error(c, err)
		return "", models.SectionKey{}, false
	}
	key, err := sectionKeyFromPath(c)
	if err != nil {
		response.Error(c, err)
		return "", models.SectionKey{}, false
	}
	return instructorID, key, true
}
