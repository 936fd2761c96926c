package models

// Instructor teaches sections. Sections reference instructors but do not own them.
type Instructor struct {
	InstructorID string `db:"instructor_id" json:"instructor_id"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
}
