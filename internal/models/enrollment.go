package models

import "time"

// Enrollment is a student's active seat in a section.
type Enrollment struct {
	StudentID     string    `db:"student_id" json:"student_id"`
	ClassCode     string    `db:"class_code" json:"class_code"`
	SectionNumber string    `db:"section_number" json:"section_number"`
	EnrolledAt    time.Time `db:"enrolled_at" json:"enrolled_at"`
}

// WaitlistEntry is a student's queued place for a full section. JoinedAt orders the queue.
type WaitlistEntry struct {
	StudentID     string    `db:"student_id" json:"student_id"`
	ClassCode     string    `db:"class_code" json:"class_code"`
	SectionNumber string    `db:"section_number" json:"section_number"`
	JoinedAt      time.Time `db:"joined_at" json:"joined_at"`
}

// DropInitiator records who removed a student from a section.
type DropInitiator string

// Drop initiators.
const (
	DropInitiatorSelf           DropInitiator = "SELF"
	DropInitiatorAdministrative DropInitiator = "ADMINISTRATIVE"
)

// DroppedRecord is an append-only history row written on every drop.
type DroppedRecord struct {
	ID            string        `db:"id" json:"id"`
	StudentID     string        `db:"student_id" json:"student_id"`
	ClassCode     string        `db:"class_code" json:"class_code"`
	SectionNumber string        `db:"section_number" json:"section_number"`
	Initiator     DropInitiator `db:"initiator" json:"initiator"`
	DroppedAt     time.Time     `db:"dropped_at" json:"dropped_at"`
}

// RosterEntry is an enrolled student in one of an instructor's sections.
type RosterEntry struct {
	StudentID     string `db:"student_id" json:"student_id"`
	FirstName     string `db:"first_name" json:"first_name"`
	LastName      string `db:"last_name" json:"last_name"`
	ClassCode     string `db:"class_code" json:"class_code"`
	SectionNumber string `db:"section_number" json:"section_number"`
	ClassName     string `db:"class_name" json:"class_name"`
}

// DroppedStudent is a dropped history row joined with the student's name.
type DroppedStudent struct {
	StudentID     string        `db:"student_id" json:"student_id"`
	FirstName     string        `db:"first_name" json:"first_name"`
	LastName      string        `db:"last_name" json:"last_name"`
	ClassCode     string        `db:"class_code" json:"class_code"`
	SectionNumber string        `db:"section_number" json:"section_number"`
	Initiator     DropInitiator `db:"initiator" json:"initiator"`
	DroppedAt     time.Time     `db:"dropped_at" json:"dropped_at"`
}

// WaitlistedStudent is a waitlist row joined with the student's name.
type WaitlistedStudent struct {
	StudentID     string    `db:"student_id" json:"student_id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	ClassCode     string    `db:"class_code" json:"class_code"`
	SectionNumber string    `db:"section_number" json:"section_number"`
	JoinedAt      time.Time `db:"joined_at" json:"joined_at"`
}
