package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

func TestRegistrarHandlerNewClass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &sectionServiceMock{result: &dto.SectionChangeResult{ClassCode: "CS101", SectionNumber: "01"}}
	handler := NewRegistrarHandler(svc)

	body := `{"class_code":"CS101","section_number":"01","class_name":"Intro","department":"CS","max_enrollment":30,"max_waitlist":5,"c_instructor_id":"i-1"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/registrar/new_class", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.NewClass(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "create", svc.called)
	assert.Equal(t, "i-1", svc.lastRequest.InstructorID)
	assert.Equal(t, 30, svc.lastRequest.MaxEnrollment)
}

func TestRegistrarHandlerNewClassInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &sectionServiceMock{}
	handler := NewRegistrarHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/registrar/new_class", bytes.NewBufferString(`{"class_code":`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.NewClass(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Empty(t, svc.called)
}

func TestRegistrarHandlerNewClassConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &sectionServiceMock{err: appErrors.Clone(appErrors.ErrConflict, "class already exists")}
	handler := NewRegistrarHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/registrar/new_class", bytes.NewBufferString(`{"class_code":"CS101"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.NewClass(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegistrarHandlerSectionActions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	key := models.SectionKey{ClassCode: "CS101", SectionNumber: "02"}
	params := gin.Params{
		{Key: "class_code", Value: key.ClassCode},
		{Key: "section_number", Value: key.SectionNumber},
		{Key: "instructor_id", Value: "i-9"},
	}

	cases := []struct {
		name   string
		call   func(h *RegistrarHandler, c *gin.Context)
		called string
	}{
		{name: "remove", call: (*RegistrarHandler).RemoveClass, called: "remove"},
		{name: "reassign", call: (*RegistrarHandler).ChangeInstructor, called: "reassign"},
		{name: "freeze", call: (*RegistrarHandler).FreezeEnrollment, called: "freeze"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &sectionServiceMock{result: &dto.SectionChangeResult{ClassCode: key.ClassCode, SectionNumber: key.SectionNumber}}
			handler := NewRegistrarHandler(svc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodPut, "/", nil)
			c.Params = params

			tc.call(handler, c)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.called, svc.called)
			assert.Equal(t, key, svc.lastKey)
		})
	}
}

func TestRegistrarHandlerChangeInstructorMissingSection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &sectionServiceMock{err: appErrors.Clone(appErrors.ErrBadRequest, "class does not exist")}
	handler := NewRegistrarHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/", nil)
	c.Params = gin.Params{
		{Key: "class_code", Value: "NOPE"},
		{Key: "section_number", Value: "01"},
		{Key: "instructor_id", Value: "i-1"},
	}

	handler.ChangeInstructor(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "i-1", svc.lastInstructor)
}
