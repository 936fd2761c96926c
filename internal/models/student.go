package models

// MaxWaitlistedSections caps how many waitlists one student may occupy.
const MaxWaitlistedSections = 3

// Student represents a learner who can enroll in sections.
type Student struct {
	StudentID   string `db:"student_id" json:"student_id"`
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	NumWaitlist int    `db:"num_waitlist" json:"num_waitlist"`
}

// CanJoinWaitlist reports whether the student is below the waitlist cap.
func (s Student) CanJoinWaitlist() bool {
	return s.NumWaitlist < MaxWaitlistedSections
}
