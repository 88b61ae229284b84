package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_DoesNotMaterialize(t *testing.T) {
	s := NewStore("Alice", "T-12")
	d := s.Preview("2026-08-24")
	require.NotNil(t, d)
	assert.Equal(t, "Alice", d.Employee)
	assert.Equal(t, "T-12", d.Truck)
	assert.Len(t, d.Jobs, SeedJobs)
	assert.Nil(t, s.Lookup("2026-08-24"))
	assert.Empty(t, s.Dates())
}

func TestDay_MaterializesOnce(t *testing.T) {
	s := NewStore("Alice", "T-12")
	d := s.Day("2026-08-24")
	assert.Same(t, d, s.Day("2026-08-24"))
	assert.Same(t, d, s.Lookup("2026-08-24"))
	assert.Equal(t, []string{"2026-08-24"}, s.Dates())
}

func TestAdopt_PersistsPreviewedEdits(t *testing.T) {
	s := NewStore("Alice", "T-12")
	d := s.Preview("2026-08-24")
	d.Jobs[0].JobNumber = "4711"
	d.Recalculate()
	s.Adopt(d)
	assert.Same(t, d, s.Lookup("2026-08-24"))
}

func TestDay_RejectsInvalidKeys(t *testing.T) {
	s := NewStore("Alice", "T-12")
	d := s.Day("not-a-date")
	require.NotNil(t, d, "caller still gets a usable record")
	assert.Empty(t, s.Dates())

	s.Adopt(NewDayRecord("also bad", "Alice", "T-12"))
	assert.Empty(t, s.Dates())
}

func TestRange_SelectionAndOrder(t *testing.T) {
	s := NewStore("Alice", "T-12")
	for _, date := range []string{"2026-08-28", "2026-08-24", "2026-08-26", "2026-09-01"} {
		s.Day(date)
	}

	got := s.Range("2026-08-24", "2026-08-30")
	require.Len(t, got, 3)
	assert.Equal(t, "2026-08-24", got[0].Date)
	assert.Equal(t, "2026-08-26", got[1].Date)
	assert.Equal(t, "2026-08-28", got[2].Date)

	assert.Empty(t, s.Range("2026-07-01", "2026-07-31"))
}

func TestRangeTotals_SkipsUnstoredDays(t *testing.T) {
	s := NewStore("Alice", "T-12")

	a := s.Day("2026-08-24")
	a.Jobs[0].WorkStart = "08:00"
	a.Jobs[0].WorkFinish = "16:00" // 480 min, net 390
	a.Recalculate()

	b := s.Day("2026-08-26")
	b.Jobs[0].WorkStart = "09:00"
	b.Jobs[0].WorkFinish = "14:00" // 300 min, net 270
	b.Recalculate()

	// 2026-08-25 is in range but never edited; it must not contribute.
	total, net := s.RangeTotals("2026-08-24", "2026-08-30")
	assert.Equal(t, 780, total)
	assert.Equal(t, 660, net)

	// Days outside the range never contribute.
	total, _ = s.RangeTotals("2026-08-25", "2026-08-30")
	assert.Equal(t, 300, total)
}
