package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/repository"
)

type studentSection struct {
	studentID string
	key       models.SectionKey
}

type memState struct {
	sections    map[models.SectionKey]models.Section
	students    map[string]models.Student
	instructors map[string]models.Instructor
	enrollments map[studentSection]models.Enrollment
	waitlist    map[studentSection]models.WaitlistEntry
	dropped     []models.DroppedRecord
}

func newMemState() *memState {
	return &memState{
		sections:    map[models.SectionKey]models.Section{},
		students:    map[string]models.Student{},
		instructors: map[string]models.Instructor{},
		enrollments: map[studentSection]models.Enrollment{},
		waitlist:    map[studentSection]models.WaitlistEntry{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.sections {
		c.sections[k] = v
	}
	for k, v := range s.students {
		c.students[k] = v
	}
	for k, v := range s.instructors {
		c.instructors[k] = v
	}
	for k, v := range s.enrollments {
		c.enrollments[k] = v
	}
	for k, v := range s.waitlist {
		c.waitlist[k] = v
	}
	c.dropped = append([]models.DroppedRecord(nil), s.dropped...)
	return c
}

// memStore serialises transactions and applies a transaction's writes only when it
// returns nil, giving the same all-or-nothing view the PostgreSQL store provides.
type memStore struct {
	mu      sync.Mutex
	state   *memState
	failOn  string
	commits int
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (m *memStore) WithinTx(ctx context.Context, label string, fn func(repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	work := &memTx{state: m.state.clone(), failOn: m.failOn}
	if err := fn(work); err != nil {
		return err
	}
	m.state = work.state
	m.commits++
	return nil
}

func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

func (m *memStore) addInstructor(id string) {
	m.state.instructors[id] = models.Instructor{InstructorID: id, FirstName: "First " + id, LastName: "Last " + id}
}

func (m *memStore) addStudent(id string, numWaitlist int) {
	m.state.students[id] = models.Student{StudentID: id, FirstName: "First " + id, LastName: "Last " + id, NumWaitlist: numWaitlist}
}

func (m *memStore) addSection(section models.Section) {
	m.state.sections[section.Key()] = section
}

// memTx mirrors the table constraints in scripts/schema.sql.
type memTx struct {
	state  *memState
	failOn string
}

var _ repository.Tx = (*memTx)(nil)

func (t *memTx) fail(op string) error {
	if t.failOn == op {
		return fmt.Errorf("%s: connection reset", op)
	}
	return nil
}

func (t *memTx) LockSection(ctx context.Context, key models.SectionKey) (*models.Section, error) {
	if err := t.fail("LockSection"); err != nil {
		return nil, err
	}
	section, ok := t.state.sections[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &section, nil
}

func (t *memTx) InsertSection(ctx context.Context, section models.Section) error {
	if _, ok := t.state.sections[section.Key()]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := t.state.instructors[section.InstructorID]; !ok {
		return repository.ErrMissingReference
	}
	t.state.sections[section.Key()] = section
	return nil
}

func (t *memTx) DeleteSection(ctx context.Context, key models.SectionKey) error {
	if _, ok := t.state.sections[key]; !ok {
		return sql.ErrNoRows
	}
	for pair := range t.state.enrollments {
		if pair.key == key {
			return fmt.Errorf("enrollments still reference %v", key)
		}
	}
	for pair := range t.state.waitlist {
		if pair.key == key {
			return fmt.Errorf("waitlist still references %v", key)
		}
	}
	delete(t.state.sections, key)
	return nil
}

func (t *memTx) UpdateSectionInstructor(ctx context.Context, key models.SectionKey, instructorID string) error {
	if _, ok := t.state.instructors[instructorID]; !ok {
		return repository.ErrMissingReference
	}
	section := t.state.sections[key]
	section.InstructorID = instructorID
	t.state.sections[key] = section
	return nil
}

func (t *memTx) DisableAutoEnrollment(ctx context.Context, key models.SectionKey) error {
	section := t.state.sections[key]
	section.AutoEnrollment = false
	t.state.sections[key] = section
	return nil
}

func (t *memTx) AdjustEnrollmentCount(ctx context.Context, key models.SectionKey, delta int) error {
	if err := t.fail("AdjustEnrollmentCount"); err != nil {
		return err
	}
	section := t.state.sections[key]
	section.CurrentEnrollment = floorZero(section.CurrentEnrollment + delta)
	if section.CurrentEnrollment > section.MaxEnrollment {
		return fmt.Errorf("check constraint: current_enrollment %d exceeds %d", section.CurrentEnrollment, section.MaxEnrollment)
	}
	t.state.sections[key] = section
	return nil
}

func (t *memTx) AdjustWaitlistCount(ctx context.Context, key models.SectionKey, delta int) error {
	section := t.state.sections[key]
	section.CurrentWaitlist = floorZero(section.CurrentWaitlist + delta)
	t.state.sections[key] = section
	return nil
}

func (t *memTx) LockStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, ok := t.state.students[studentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &student, nil
}

func (t *memTx) AdjustStudentWaitlistCount(ctx context.Context, studentID string, delta int) error {
	student, ok := t.state.students[studentID]
	if !ok {
		return nil
	}
	student.NumWaitlist = floorZero(student.NumWaitlist + delta)
	if student.NumWaitlist > models.MaxWaitlistedSections {
		return fmt.Errorf("check constraint: num_waitlist %d", student.NumWaitlist)
	}
	t.state.students[studentID] = student
	return nil
}

func (t *memTx) ReleaseWaitlistedStudents(ctx context.Context, key models.SectionKey) (int64, error) {
	var released int64
	for pair := range t.state.waitlist {
		if pair.key != key {
			continue
		}
		if err := t.AdjustStudentWaitlistCount(ctx, pair.studentID, -1); err != nil {
			return released, err
		}
		released++
	}
	return released, nil
}

func (t *memTx) FindInstructor(ctx context.Context, instructorID string) (*models.Instructor, error) {
	instructor, ok := t.state.instructors[instructorID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &instructor, nil
}

func (t *memTx) EnrollmentExists(ctx context.Context, studentID string, key models.SectionKey) (bool, error) {
	_, ok := t.state.enrollments[studentSection{studentID, key}]
	return ok, nil
}

func (t *memTx) InsertEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	key := models.SectionKey{ClassCode: enrollment.ClassCode, SectionNumber: enrollment.SectionNumber}
	pair := studentSection{enrollment.StudentID, key}
	if _, ok := t.state.enrollments[pair]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := t.state.students[enrollment.StudentID]; !ok {
		return repository.ErrMissingReference
	}
	t.state.enrollments[pair] = *enrollment
	return nil
}

func (t *memTx) DeleteEnrollment(ctx context.Context, studentID string, key models.SectionKey) error {
	pair := studentSection{studentID, key}
	if _, ok := t.state.enrollments[pair]; !ok {
		return sql.ErrNoRows
	}
	delete(t.state.enrollments, pair)
	return nil
}

func (t *memTx) DeleteSectionEnrollments(ctx context.Context, key models.SectionKey) (int64, error) {
	var removed int64
	for pair := range t.state.enrollments {
		if pair.key == key {
			delete(t.state.enrollments, pair)
			removed++
		}
	}
	return removed, nil
}

func (t *memTx) WaitlistExists(ctx context.Context, studentID string, key models.SectionKey) (bool, error) {
	_, ok := t.state.waitlist[studentSection{studentID, key}]
	return ok, nil
}

func (t *memTx) InsertWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	key := models.SectionKey{ClassCode: entry.ClassCode, SectionNumber: entry.SectionNumber}
	pair := studentSection{entry.StudentID, key}
	if _, ok := t.state.waitlist[pair]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := t.state.students[entry.StudentID]; !ok {
		return repository.ErrMissingReference
	}
	t.state.waitlist[pair] = *entry
	return nil
}

func (t *memTx) DeleteWaitlistEntry(ctx context.Context, studentID string, key models.SectionKey) error {
	pair := studentSection{studentID, key}
	if _, ok := t.state.waitlist[pair]; !ok {
		return sql.ErrNoRows
	}
	delete(t.state.waitlist, pair)
	return nil
}

func (t *memTx) ListSectionWaitlist(ctx context.Context, key models.SectionKey) ([]models.WaitlistEntry, error) {
	var entries []models.WaitlistEntry
	for pair, entry := range t.state.waitlist {
		if pair.key == key {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].JoinedAt.Equal(entries[j].JoinedAt) {
			return entries[i].StudentID < entries[j].StudentID
		}
		return entries[i].JoinedAt.Before(entries[j].JoinedAt)
	})
	return entries, nil
}

func (t *memTx) DeleteSectionWaitlist(ctx context.Context, key models.SectionKey) (int64, error) {
	var removed int64
	for pair := range t.state.waitlist {
		if pair.key == key {
			delete(t.state.waitlist, pair)
			removed++
		}
	}
	return removed, nil
}

func (t *memTx) InsertDropped(ctx context.Context, record *models.DroppedRecord) error {
	if err := t.fail("InsertDropped"); err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = fmt.Sprintf("drop-%d", len(t.state.dropped)+1)
	}
	t.state.dropped = append(t.state.dropped, *record)
	return nil
}

func (t *memTx) DeleteSectionDropped(ctx context.Context, key models.SectionKey) (int64, error) {
	kept := t.state.dropped[:0:0]
	var removed int64
	for _, record := range t.state.dropped {
		if record.ClassCode == key.ClassCode && record.SectionNumber == key.SectionNumber {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	t.state.dropped = kept
	return removed, nil
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// checkCounters returns a description of the first counter that disagrees with its rows.
func (s *memState) checkCounters() string {
	enrolled := map[models.SectionKey]int{}
	waiting := map[models.SectionKey]int{}
	perStudent := map[string]int{}
	for pair := range s.enrollments {
		enrolled[pair.key]++
		if _, both := s.waitlist[pair]; both {
			return fmt.Sprintf("%s is both enrolled and waitlisted in %v", pair.studentID, pair.key)
		}
	}
	for pair := range s.waitlist {
		waiting[pair.key]++
		perStudent[pair.studentID]++
	}
	for key, section := range s.sections {
		if section.CurrentEnrollment != enrolled[key] {
			return fmt.Sprintf("%v current_enrollment=%d rows=%d", key, section.CurrentEnrollment, enrolled[key])
		}
		if section.CurrentWaitlist != waiting[key] {
			return fmt.Sprintf("%v current_waitlist=%d rows=%d", key, section.CurrentWaitlist, waiting[key])
		}
		if section.CurrentEnrollment > section.MaxEnrollment {
			return fmt.Sprintf("%v over capacity", key)
		}
	}
	for id, student := range s.students {
		if student.NumWaitlist != perStudent[id] {
			return fmt.Sprintf("student %s num_waitlist=%d rows=%d", id, student.NumWaitlist, perStudent[id])
		}
		if student.NumWaitlist < 0 || student.NumWaitlist > models.MaxWaitlistedSections {
			return fmt.Sprintf("student %s num_waitlist=%d out of range", id, student.NumWaitlist)
		}
	}
	return ""
}
