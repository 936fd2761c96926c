package service

import (
	"sort"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

// WaitlistRank returns the 1-based position of studentID in a section's waitlist,
// ordered by join time. Entries with equal join times keep their input order.
// The boolean is false when the student is not queued.
func WaitlistRank(entries []models.WaitlistEntry, studentID string) (int, bool) {
	ordered := make([]models.WaitlistEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].JoinedAt.Before(ordered[j].JoinedAt)
	})
	for i, entry := range ordered {
		if entry.StudentID == studentID {
			return i + 1, true
		}
	}
	return 0, false
}
