package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"08:30", 510},
		{"16:30", 990},
		{"23:59", 1439},
		{" 09:15 ", 555},
		{"", 0},
		{"8", 0},
		{"24:00", 0},
		{"12:60", 0},
		{"-1:30", 0},
		{"ab:cd", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToMinutes(tc.clock), "clock=%q", tc.clock)
	}
}

func TestFormatDecimalHours(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0.00"},
		{-5, "0.00"},
		{90, "1.50"},
		{450, "7.50"},
		{510, "8.50"},
		{540, "9.00"},
		{1, "0.02"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDecimalHours(tc.minutes), "minutes=%d", tc.minutes)
	}
}

func TestDayOfWeek(t *testing.T) {
	assert.Equal(t, "Monday", DayOfWeek("2026-08-24"))
	assert.Equal(t, "Sunday", DayOfWeek("2026-08-30"))
	assert.Equal(t, "", DayOfWeek(""))
	assert.Equal(t, "", DayOfWeek("not-a-date"))
	assert.Equal(t, "", DayOfWeek("2026-13-40"))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-08-25"))
	assert.False(t, ValidDate("2026-8-25"))
	assert.False(t, ValidDate(""))
}

func TestWeekRange(t *testing.T) {
	// Wednesday in the middle of a week.
	wed := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)
	start, end := WeekRange(wed)
	assert.Equal(t, "2026-08-24", start)
	assert.Equal(t, "2026-08-30", end)

	// Sunday belongs to the week that started the previous Monday.
	sun := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	start, end = WeekRange(sun)
	assert.Equal(t, "2026-08-24", start)
	assert.Equal(t, "2026-08-30", end)
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2026-09-01", AddDays("2026-08-31", 1))
	assert.Equal(t, "2026-08-24", AddDays("2026-08-25", -1))
	assert.Equal(t, "garbage", AddDays("garbage", 3))
}
