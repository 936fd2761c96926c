package dto

import "github.com/noah-isme/course-enrollment-api/internal/models"

// CreateSectionRequest is the registrar payload for a new section. Counter fields are
// stored as supplied, which allows importing sections that already have students.
type CreateSectionRequest struct {
	ClassCode         string `json:"class_code" validate:"required"`
	SectionNumber     string `json:"section_number" validate:"required"`
	ClassName         string `json:"class_name" validate:"required"`
	Department        string `json:"department" validate:"required"`
	AutoEnrollment    bool   `json:"auto_enrollment"`
	MaxEnrollment     int    `json:"max_enrollment" validate:"gte=0"`
	CurrentEnrollment int    `json:"current_enrollment" validate:"gte=0,ltefield=MaxEnrollment"`
	MaxWaitlist       int    `json:"max_waitlist" validate:"gte=0"`
	CurrentWaitlist   int    `json:"current_waitlist" validate:"gte=0"`
	InstructorID      string `json:"c_instructor_id" validate:"required"`
}

// Section converts the request into the persisted record.
func (r CreateSectionRequest) Section() models.Section {
	return models.Section{
		ClassCode:         r.ClassCode,
		SectionNumber:     r.SectionNumber,
		ClassName:         r.ClassName,
		Department:        r.Department,
		AutoEnrollment:    r.AutoEnrollment,
		MaxEnrollment:     r.MaxEnrollment,
		CurrentEnrollment: r.CurrentEnrollment,
		MaxWaitlist:       r.MaxWaitlist,
		CurrentWaitlist:   r.CurrentWaitlist,
		InstructorID:      r.InstructorID,
	}
}

// SectionChangeResult acknowledges a registrar action on a section.
type SectionChangeResult struct {
	ClassCode     string          `json:"class_code"`
	SectionNumber string          `json:"section_number"`
	InstructorID  string          `json:"instructor_id,omitempty"`
	Section       *models.Section `json:"section,omitempty"`
	Detail        string          `json:"detail"`
}
