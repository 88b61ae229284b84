package timesheet

import (
	"github.com/google/uuid"

	"github.com/fieldsheet/fieldsheet/internal/timeutil"
)

// JobEntry is a single job on a day's sheet: four optional clock times
// plus free-text labels. TotalMinutes is derived; call Recalculate after
// changing any time field (DayRecord.Recalculate does this for you).
type JobEntry struct {
	ID          string
	JobNumber   string
	Location    string
	TravelStart string
	WorkStart   string
	WorkFinish  string
	TravelHome  string

	TotalMinutes int
}

// NewJobEntry returns an empty entry with a fresh stable ID.
func NewJobEntry() *JobEntry {
	return &JobEntry{ID: uuid.NewString()}
}

// Recalculate derives TotalMinutes as the sum of the three sequential
// segments travel-out, on-site work, and travel home. A segment counts
// only when both of its endpoints are filled in, and a segment whose
// times run backwards contributes 0 instead of going negative.
func (j *JobEntry) Recalculate() {
	total := 0
	total += segment(j.TravelStart, j.WorkStart)
	total += segment(j.WorkStart, j.WorkFinish)
	total += segment(j.WorkFinish, j.TravelHome)
	j.TotalMinutes = total
}

func segment(from, to string) int {
	if from == "" || to == "" {
		return 0
	}
	d := timeutil.ToMinutes(to) - timeutil.ToMinutes(from)
	if d < 0 {
		return 0
	}
	return d
}

// Empty reports whether no field of the entry has been filled in.
func (j *JobEntry) Empty() bool {
	return j.JobNumber == "" && j.Location == "" &&
		j.TravelStart == "" && j.WorkStart == "" &&
		j.WorkFinish == "" && j.TravelHome == ""
}
