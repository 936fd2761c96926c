package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
	"github.com/noah-isme/course-enrollment-api/pkg/response"
)

type sectionService interface {
	Create(ctx context.Context, req dto.CreateSectionRequest) (*dto.SectionChangeResult, error)
	Remove(ctx context.Context, key models.SectionKey) (*dto.SectionChangeResult, error)
	ReassignInstructor(ctx context.Context, key models.SectionKey, instructorID string) (*dto.SectionChangeResult, error)
	FreezeAutoEnrollment(ctx context.Context, key models.SectionKey) (*dto.SectionChangeResult, error)
}

// RegistrarHandler exposes section lifecycle endpoints.
type RegistrarHandler struct {
	sections sectionService
}

// NewRegistrarHandler constructs RegistrarHandler.
func NewRegistrarHandler(sections sectionService) *RegistrarHandler {
	return &RegistrarHandler{sections: sections}
}

// NewClass godoc
// @Summary Create a section
// @Tags Registrar
// @Accept json
// @Produce json
// @Param payload body dto.CreateSectionRequest true "Section payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /registrar/new_class [post]
func (h *RegistrarHandler) NewClass(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.sections.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// RemoveClass godoc
// @Summary Remove a section with its enrollments, waitlist and drop history
// @Tags Registrar
// @Produce json
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registrar/remove_class/code/{class_code}/section/{section_number} [delete]
func (h *RegistrarHandler) RemoveClass(c *gin.Context) {
	key, err := sectionKeyFromPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.sections.Remove(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ChangeInstructor godoc
// @Summary Reassign a section to another instructor
// @Tags Registrar
// @Produce json
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Param instructor_id path string true "New instructor ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registrar/change_instructor/class/{class_code}/section/{section_number}/new_instructor/{instructor_id} [put]
func (h *RegistrarHandler) ChangeInstructor(c *gin.Context) {
	key, err := sectionKeyFromPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	instructorID, err := requiredParam(c, "instructor_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.sections.ReassignInstructor(c.Request.Context(), key, instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// FreezeEnrollment godoc
// @Summary Turn off automatic enrollment for a section
// @Tags Registrar
// @Produce json
// @Param class_code path string true "Class code"
// @Param section_number path string true "Section number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registrar/freeze_enrollment/class/{class_code}/section/{section_number} [put]
func (h *RegistrarHandler) FreezeEnrollment(c *gin.Context) {
	key, err := sectionKeyFromPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.sections.FreezeAutoEnrollment(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
