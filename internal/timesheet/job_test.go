package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobRecalculate_FullDay(t *testing.T) {
	j := NewJobEntry()
	j.TravelStart = "08:00"
	j.WorkStart = "08:30"
	j.WorkFinish = "16:30"
	j.TravelHome = "17:00"
	j.Recalculate()
	assert.Equal(t, 540, j.TotalMinutes) // 30 + 480 + 30
}

func TestJobRecalculate_SegmentNeedsBothEndpoints(t *testing.T) {
	// Travel start set but work start blank: the outer fields alone
	// contribute nothing.
	j := NewJobEntry()
	j.TravelStart = "08:00"
	j.TravelHome = "17:00"
	j.Recalculate()
	assert.Equal(t, 0, j.TotalMinutes)

	// Only the middle segment filled.
	j = NewJobEntry()
	j.WorkStart = "09:00"
	j.WorkFinish = "12:15"
	j.Recalculate()
	assert.Equal(t, 195, j.TotalMinutes)
}

func TestJobRecalculate_BackwardsSegmentClamps(t *testing.T) {
	j := NewJobEntry()
	j.WorkStart = "14:00"
	j.WorkFinish = "09:00"
	j.Recalculate()
	assert.Equal(t, 0, j.TotalMinutes)

	// One backwards segment must not eat into a valid one.
	j.TravelStart = "13:00"
	j.Recalculate()
	assert.Equal(t, 60, j.TotalMinutes)
}

func TestJobRecalculate_PairDifference(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"08:00", "08:00", 0},
		{"08:00", "09:30", 90},
		{"00:00", "23:59", 1439},
		{"10:00", "09:00", 0},
	}
	for _, tc := range cases {
		j := NewJobEntry()
		j.WorkStart = tc.from
		j.WorkFinish = tc.to
		j.Recalculate()
		assert.Equal(t, tc.want, j.TotalMinutes, "%s-%s", tc.from, tc.to)
	}
}

func TestJobEmpty(t *testing.T) {
	j := NewJobEntry()
	assert.True(t, j.Empty())
	j.Location = "North Yard"
	assert.False(t, j.Empty())
}

func TestNewJobEntry_UniqueIDs(t *testing.T) {
	a, b := NewJobEntry(), NewJobEntry()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
