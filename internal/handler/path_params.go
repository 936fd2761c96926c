package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

// sectionKeyFromPath reads :class_code and :section_number.
func sectionKeyFromPath(c *gin.Context) (models.SectionKey, error) {
	key := models.SectionKey{
		ClassCode:     strings.TrimSpace(c.Param("class_code")),
		SectionNumber: strings.TrimSpace(c.Param("section_number")),
	}
	if key.ClassCode == "" || key.SectionNumber == "" {
		return key, appErrors.Clone(appErrors.ErrBadRequest, "class_code and section_number are required")
	}
	return key, nil
}

// requiredParam returns a trimmed, non-empty path parameter.
func requiredParam(c *gin.Context, name string) (string, error) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		return "", appErrors.Clone(appErrors.ErrBadRequest, name+" is required")
	}
	return value, nil
}
