package models

// Section is a specific offering of a class, keyed by class code and section number.
type Section struct {
	ClassCode         string `db:"class_code" json:"class_code"`
	SectionNumber     string `db:"section_number" json:"section_number"`
	ClassName         string `db:"class_name" json:"class_name"`
	Department        string `db:"department" json:"department"`
	AutoEnrollment    bool   `db:"auto_enrollment" json:"auto_enrollment"`
	MaxEnrollment     int    `db:"max_enrollment" json:"max_enrollment"`
	CurrentEnrollment int    `db:"current_enrollment" json:"current_enrollment"`
	MaxWaitlist       int    `db:"max_waitlist" json:"max_waitlist"`
	CurrentWaitlist   int    `db:"current_waitlist" json:"current_waitlist"`
	InstructorID      string `db:"instructor_id" json:"instructor_id"`
}

// Key returns the section identity.
func (s Section) Key() SectionKey {
	return SectionKey{ClassCode: s.ClassCode, SectionNumber: s.SectionNumber}
}

// HasOpenSeat reports whether another student can be enrolled directly.
func (s Section) HasOpenSeat() bool {
	return s.CurrentEnrollment < s.MaxEnrollment
}

// SectionKey identifies a section.
type SectionKey struct {
	ClassCode     string `json:"class_code"`
	SectionNumber string `json:"section_number"`
}

// AvailableSection is a section with open seats joined with its instructor.
type AvailableSection struct {
	ClassCode           string `db:"class_code" json:"class_code"`
	SectionNumber       string `db:"section_number" json:"section_number"`
	ClassName           string `db:"class_name" json:"class_name"`
	InstructorFirstName string `db:"instructor_first_name" json:"instructor_first_name"`
	InstructorLastName  string `db:"instructor_last_name" json:"instructor_last_name"`
	CurrentEnrollment   int    `db:"current_enrollment" json:"current_enrollment"`
	MaxEnrollment       int    `db:"max_enrollment" json:"max_enrollment"`
}
