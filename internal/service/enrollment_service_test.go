package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

var cpsc449 = models.SectionKey{ClassCode: "CPSC449", SectionNumber: "01"}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) Invalidate(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

func newSection(key models.SectionKey, maxEnrollment int) models.Section {
	return models.Section{
		ClassCode:      key.ClassCode,
		SectionNumber:  key.SectionNumber,
		ClassName:      "Web Back-End Engineering",
		Department:     "Computer Science",
		AutoEnrollment: true,
		MaxEnrollment:  maxEnrollment,
		MaxWaitlist:    15,
		InstructorID:   "i1",
	}
}

func newEnrollmentFixture(t *testing.T, maxEnrollment int) (*EnrollmentService, *memStore, *countingNotifier) {
	t.Helper()
	store := newMemStore()
	store.addInstructor("i1")
	store.addSection(newSection(cpsc449, maxEnrollment))
	notifier := &countingNotifier{}
	svc := NewEnrollmentService(store, notifier, NewMetricsService(), nil)
	clock := time.Date(2024, 8, 26, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, store, notifier
}

func requireCode(t *testing.T, err error, target *appErrors.Error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, target), "expected %s, got %v", target.Code, err)
	if message != "" {
		assert.Equal(t, message, appErrors.FromError(err).Message)
	}
}

func TestEnrollmentLifecycleScenario(t *testing.T) {
	svc, store, notifier := newEnrollmentFixture(t, 1)
	store.addStudent("S1", 0)
	store.addStudent("S2", 0)
	ctx := context.Background()

	res, err := svc.Enroll(ctx, "S1", cpsc449)
	require.NoError(t, err)
	assert.Equal(t, dto.EnrollStatusEnrolled, res.Status)
	assert.Equal(t, detailEnrolled, res.Detail)
	assert.Equal(t, 1, store.snapshot().sections[cpsc449].CurrentEnrollment)

	res, err = svc.Enroll(ctx, "S2", cpsc449)
	require.NoError(t, err)
	assert.Equal(t, dto.EnrollStatusWaitlisted, res.Status)
	state := store.snapshot()
	assert.Equal(t, 1, state.sections[cpsc449].CurrentWaitlist)
	assert.Equal(t, 1, state.students["S2"].NumWaitlist)

	rank, err := svc.RankOnWaitlist(ctx, "S2", cpsc449)
	require.NoError(t, err)
	assert.Equal(t, 1, rank.Position)
	assert.Equal(t, "You are number 1 on the waitlist", rank.Detail)

	dropped, err := svc.Drop(ctx, "S1", cpsc449, models.DropInitiatorSelf)
	require.NoError(t, err)
	assert.Equal(t, detailSelfDropped, dropped.Detail)
	state = store.snapshot()
	assert.Equal(t, 0, state.sections[cpsc449].CurrentEnrollment)
	assert.Empty(t, state.enrollments, "waitlisted student must not be promoted")
	require.Len(t, state.dropped, 1)
	assert.Equal(t, models.DropInitiatorSelf, state.dropped[0].Initiator)

	left, err := svc.LeaveWaitlist(ctx, "S2", cpsc449)
	require.NoError(t, err)
	assert.Equal(t, detailLeftWaitlist, left.Detail)
	state = store.snapshot()
	assert.Equal(t, 0, state.sections[cpsc449].CurrentWaitlist)
	assert.Equal(t, 0, state.students["S2"].NumWaitlist)
	assert.Empty(t, state.checkCounters())

	assert.Equal(t, 4, notifier.count())
	assert.Equal(t, float64(1), operationCount(t, svc.metrics, "enroll", OutcomeEnrolled))
	assert.Equal(t, float64(1), operationCount(t, svc.metrics, "enroll", OutcomeWaitlisted))
}

func TestEnrollRejectsFullWaitlistQuota(t *testing.T) {
	svc, store, notifier := newEnrollmentFixture(t, 0)
	store.addStudent("S1", models.MaxWaitlistedSections)
	before := store.snapshot()

	_, err := svc.Enroll(context.Background(), "S1", cpsc449)
	requireCode(t, err, appErrors.ErrConflict, msgWaitlistLimitReached)

	after := store.snapshot()
	assert.Equal(t, before.sections, after.sections)
	assert.Equal(t, before.students, after.students)
	assert.Empty(t, after.waitlist)
	assert.Zero(t, notifier.count())
	assert.Equal(t, float64(1), operationCount(t, svc.metrics, "enroll", OutcomeRejected))
}

func TestEnrollPreconditions(t *testing.T) {
	svc, store, _ := newEnrollmentFixture(t, 1)
	store.addStudent("S1", 0)
	store.addStudent("S2", 0)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, "S1", models.SectionKey{ClassCode: "NOPE", SectionNumber: "01"})
	requireCode(t, err, appErrors.ErrNotFound, msgSectionNotFound)

	_, err = svc.Enroll(ctx, "S1", cpsc449)
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, "S1", cpsc449)
	requireCode(t, err, appErrors.ErrConflict, msgAlreadyEnrolled)

	_, err = svc.Enroll(ctx, "S2", cpsc449)
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, "S2", cpsc449)
	requireCode(t, err, appErrors.ErrConflict, msgAlreadyWaitlisted)

	assert.Empty(t, store.snapshot().checkCounters())
}

func TestEnrollUnknownStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("open seat", func(t *testing.T) {
		svc, store, _ := newEnrollmentFixture(t, 5)
		_, err := svc.Enroll(ctx, "ghost", cpsc449)
		requireCode(t, err, appErrors.ErrNotFound, msgStudentNotFound)
		assert.Zero(t, store.snapshot().sections[cpsc449].CurrentEnrollment)
	})

	t.Run("full section", func(t *testing.T) {
		svc, store, _ := newEnrollmentFixture(t, 0)
		_, err := svc.Enroll(ctx, "ghost", cpsc449)
		requireCode(t, err, appErrors.ErrNotFound, msgStudentNotFound)
		assert.Zero(t, store.snapshot().sections[cpsc449].CurrentWaitlist)
	})
}

func TestDropTwiceReportsNotEnrolled(t *testing.T) {
	svc, store, _ := newEnrollmentFixture(t, 2)
	store.addStudent("S1", 0)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, "S1", cpsc449)
	require.NoError(t, err)

	res, err := svc.Drop(ctx, "S1", cpsc449, models.DropInitiatorAdministrative)
	require.NoError(t, err)
	assert.Equal(t, detailAdminDropped, res.Detail)

	_, err = svc.Drop(ctx, "S1", cpsc449, models.DropInitiatorAdministrative)
	requireCode(t, err, appErrors.ErrNotFound, msgNotEnrolled)

	state := store.snapshot()
	assert.Equal(t, 0, state.sections[cpsc449].CurrentEnrollment)
	assert.Len(t, state.dropped, 1)
	assert.Equal(t, models.DropInitiatorAdministrative, state.dropped[0].Initiator)
}

func TestDropFloorsEnrollmentCounter(t *testing.T) {
	svc, store, _ := newEnrollmentFixture(t, 2)
	store.addStudent("S1", 0)
	store.state.enrollments[studentSection{"S1", cpsc449}] = models.Enrollment{StudentID: "S1", ClassCode: "CPSC449", SectionNumber: "01"}

	_, err := svc.Drop(context.Background(), "S1", cpsc449, models.DropInitiatorSelf)
	require.NoError(t, err)
	assert.Equal(t, 0, store.snapshot().sections[cpsc449].CurrentEnrollment)
}

func TestDropDefaultsToSelfInitiator(t *testing.T) {
	svc, store, _ := newEnrollmentFixture(t, 2)
	store.addStudent("S1", 0)
	_, err := svc.Enroll(context.Background(), "S1", cpsc449)
	require.NoError(t, err)

	res, err := svc.Drop(context.Background(), "S1", cpsc449, "")
	require.NoError(t, err)
	assert.Equal(t, models.DropInitiatorSelf, res.Initiator)
}

func TestDropRollsBackOnStoreFailure(t *testing.T) {
	svc, store, notifier := newEnrollmentFixture(t, 2)
	store.addStudent("S1", 0)
	_, err := svc.Enroll(context.Background(), "S1", cpsc449)
	require.NoError(t, err)
	calls := notifier.count()

	store.failOn = "InsertDropped"
	_, err = svc.Drop(context.Background(), "S1", cpsc449, models.DropInitiatorSelf)
	requireCode(t, err, appErrors.ErrInternal, "failed to record drop")

	state := store.snapshot()
	assert.Len(t, state.enrollments, 1, "enrollment must survive a failed drop")
	assert.Equal(t, 1, state.sections[cpsc449].CurrentEnrollment)
	assert.Empty(t, state.dropped)
	assert.Equal(t, calls, notifier.count())
	assert.Equal(t, float64(1), operationCount(t, svc.metrics, "drop", OutcomeFailed))
}

func TestLeaveWaitlistAndRankRequireEntry(t *testing.T) {
	svc, store, _ := newEnrollmentFixture(t, 0)
	store.addStudent("S1", 0)
	ctx := context.Background()

	_, err := svc.LeaveWaitlist(ctx, "S1", cpsc449)
	requireCode(t, err, appErrors.ErrNotFound, msgNotWaitlisted)

	_, err = svc.RankOnWaitlist(ctx, "S1", cpsc449)
	requireCode(t, err, appErrors.ErrNotFound, msgNotWaitlisted)

	_, err = svc.LeaveWaitlist(ctx, "S1", models.SectionKey{ClassCode: "NOPE", SectionNumber: "9"})
	requireCode(t, err, appErrors.ErrNotFound, msgNotWaitlisted)
}

func TestRankFollowsJoinOrder(t *testing.T) {
	svc, store, _ := newEnrollmentFixture(t, 0)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("S%d", i)
		store.addStudent(id, 0)
		_, err := svc.Enroll(ctx, id, cpsc449)
		require.NoError(t, err)
	}

	_, err := svc.LeaveWaitlist(ctx, "S1", cpsc449)
	require.NoError(t, err)

	rank, err := svc.RankOnWaitlist(ctx, "S3", cpsc449)
	require.NoError(t, err)
	assert.Equal(t, 2, rank.Position)
}

func TestConcurrentEnrollSeatsExactlyOne(t *testing.T) {
	svc, store, _ := newEnrollmentFixture(t, 1)
	const n = 20
	for i := 0; i < n; i++ {
		store.addStudent(fmt.Sprintf("S%02d", i), 0)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes = map[string]int{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			res, err := svc.Enroll(context.Background(), id, cpsc449)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil && appErrors.Is(err, appErrors.ErrConflict):
				outcomes["conflict"]++
			case err != nil:
				outcomes["error"]++
			default:
				outcomes[string(res.Status)]++
			}
		}(fmt.Sprintf("S%02d", i))
	}
	wg.Wait()

	assert.Equal(t, 1, outcomes[string(dto.EnrollStatusEnrolled)])
	assert.Equal(t, n-1, outcomes[string(dto.EnrollStatusWaitlisted)]+outcomes["conflict"])
	assert.Zero(t, outcomes["error"])
	assert.Empty(t, store.snapshot().checkCounters())
}

func TestRandomOperationsPreserveCounters(t *testing.T) {
	store := newMemStore()
	store.addInstructor("i1")
	sections := []models.SectionKey{
		{ClassCode: "CPSC449", SectionNumber: "01"},
		{ClassCode: "CPSC449", SectionNumber: "02"},
		{ClassCode: "CPSC332", SectionNumber: "01"},
		{ClassCode: "MATH270", SectionNumber: "03"},
		{ClassCode: "PHYS225", SectionNumber: "01"},
	}
	for i, key := range sections {
		store.addSection(newSection(key, i%3))
	}
	students := make([]string, 8)
	for i := range students {
		students[i] = fmt.Sprintf("S%d", i)
		store.addStudent(students[i], 0)
	}
	svc := NewEnrollmentService(store, nil, nil, nil)
	sections = append(sections, models.SectionKey{ClassCode: "GONE", SectionNumber: "01"})

	rng := rand.New(rand.NewSource(449))
	ctx := context.Background()
	for step := 0; step < 2000; step++ {
		student := students[rng.Intn(len(students))]
		key := sections[rng.Intn(len(sections))]
		var err error
		switch rng.Intn(4) {
		case 0, 1:
			_, err = svc.Enroll(ctx, student, key)
		case 2:
			_, err = svc.Drop(ctx, student, key, models.DropInitiatorSelf)
		case 3:
			_, err = svc.LeaveWaitlist(ctx, student, key)
		}
		if err != nil {
			require.False(t, appErrors.Is(err, appErrors.ErrInternal), "step %d: %v", step, err)
		}
		require.Empty(t, store.snapshot().checkCounters(), "step %d", step)
	}
}
