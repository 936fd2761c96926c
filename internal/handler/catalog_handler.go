package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-enrollment-api/internal/middleware"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/pkg/response"
)

type catalogQueries interface {
	ListSections(ctx context.Context) ([]models.Section, bool, error)
	StudentDetails(ctx context.Context, studentID string) (*models.Student, error)
	StudentEnrollments(ctx context.Context, studentID string) ([]models.Enrollment, error)
	Waitlist(ctx context.Context) ([]models.WaitlistEntry, error)
}

// CatalogHandler exposes unscoped listings of sections, students and waitlists.
type CatalogHandler struct {
	queries catalogQueries
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(queries catalogQueries) *CatalogHandler {
	return &CatalogHandler{queries: queries}
}

// AllClasses godoc
// @Summary List every section
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /all_classes [get]
func (h *CatalogHandler) AllClasses(c *gin.Context) {
	sections, cacheHit, err := h.queries.ListSections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, sections, middleware.ExtractMeta(c))
}

// StudentDetails godoc
// @Summary Get a student
// @Tags Catalog
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student_details/{student_id} [get]
func (h *CatalogHandler) StudentDetails(c *gin.Context) {
	studentID, err := requiredParam(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.queries.StudentDetails(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// StudentEnrollment godoc
// @Summary List a student's enrollments
// @Tags Catalog
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /student_enrollment/{student_id} [get]
func (h *CatalogHandler) StudentEnrollment(c *gin.Context) {
	studentID, err := requiredParam(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollments, err := h.queries.StudentEnrollments(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// Waitlist godoc
// @Summary List every waitlist entry in join order
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /waitlist [get]
func (h *CatalogHandler) Waitlist(c *gin.Context) {
	entries, err := h.queries.Waitlist(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}
