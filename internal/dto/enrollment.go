package dto

import "github.com/noah-isme/course-enrollment-api/internal/models"

// EnrollStatus is the outcome of an enroll attempt.
type EnrollStatus string

// Enroll outcomes.
const (
	EnrollStatusEnrolled   EnrollStatus = "ENROLLED"
	EnrollStatusWaitlisted EnrollStatus = "WAITLISTED"
)

// EnrollResult reports whether the student got a seat or a waitlist place.
type EnrollResult struct {
	Status        EnrollStatus `json:"status"`
	StudentID     string       `json:"student_id"`
	ClassCode     string       `json:"class_code"`
	SectionNumber string       `json:"section_number"`
	Detail        string       `json:"detail"`
}

// DropResult confirms a drop and who initiated it.
type DropResult struct {
	StudentID     string               `json:"student_id"`
	ClassCode     string               `json:"class_code"`
	SectionNumber string               `json:"section_number"`
	Initiator     models.DropInitiator `json:"initiator"`
	Detail        string               `json:"detail"`
}

// LeaveWaitlistResult confirms removal from a waitlist.
type LeaveWaitlistResult struct {
	StudentID     string `json:"student_id"`
	ClassCode     string `json:"class_code"`
	SectionNumber string `json:"section_number"`
	Detail        string `json:"detail"`
}

// WaitlistPosition is a student's 1-based rank on a section waitlist.
type WaitlistPosition struct {
	StudentID     string `json:"student_id"`
	ClassCode     string `json:"class_code"`
	SectionNumber string `json:"section_number"`
	Position      int    `json:"position"`
	Detail        string `json:"detail"`
}
