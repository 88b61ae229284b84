package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsheet/fieldsheet/internal/timesheet"
)

func sampleRequest(t *testing.T) Request {
	t.Helper()
	s := timesheet.NewStore("Alice", "T-12")

	d := s.Day("2026-08-24")
	d.Jobs[0].JobNumber = "4711"
	d.Jobs[0].Location = "North Yard"
	d.Jobs[0].TravelStart = "08:00"
	d.Jobs[0].WorkStart = "08:30"
	d.Jobs[0].WorkFinish = "16:30"
	d.Jobs[0].TravelHome = "17:00"
	d.Recalculate()

	d2 := s.Day("2026-08-26")
	d2.OnCall = true
	d2.Jobs[0].WorkStart = "09:00"
	d2.Jobs[0].WorkFinish = "14:00"
	d2.Recalculate()

	return Request{
		Start: "2026-08-24",
		End:   "2026-08-30",
		Days:  s.Range("2026-08-24", "2026-08-30"),
	}
}

func TestBuildPayload(t *testing.T) {
	p := buildPayload(sampleRequest(t))

	assert.Equal(t, "Alice", p.Employee)
	assert.Equal(t, "T-12", p.Truck)
	assert.Equal(t, "2026-08-24", p.PeriodStart)
	assert.Equal(t, "2026-08-30", p.PeriodEnd)
	require.Len(t, p.Days, 2)

	mon := p.Days[0]
	assert.Equal(t, "Monday", mon.Weekday)
	assert.False(t, mon.OnCall)
	require.Len(t, mon.Jobs, 1, "empty seeded jobs must be dropped")
	assert.Equal(t, "9.00", mon.Jobs[0].Hours)
	assert.Equal(t, "7.50", mon.NetHours)

	assert.True(t, p.Days[1].OnCall)
	assert.Equal(t, "14.00", p.TotalHours)
	assert.Equal(t, "12.00", p.NetHours)
}

func TestBuildUserPrompt_IsJSON(t *testing.T) {
	raw := buildUserPrompt(sampleRequest(t))
	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "Alice", decoded.Employee)
}

func TestBuildSystemPrompt_EmbedsSchema(t *testing.T) {
	prompt := buildSystemPrompt()
	assert.Contains(t, prompt, `"summary"`)
	assert.Contains(t, prompt, `"highlights"`)
	assert.Contains(t, prompt, "payroll assistant")
}

func TestParseSummary(t *testing.T) {
	s, err := parseSummary(`{"summary": "A quiet week.", "highlights": ["on call Wednesday"]}`)
	require.NoError(t, err)
	assert.Equal(t, "A quiet week.", s.Text)
	assert.Equal(t, []string{"on call Wednesday"}, s.Highlights)

	// Plain text falls back to the whole response.
	s, err = parseSummary("Just a plain sentence.")
	require.NoError(t, err)
	assert.Equal(t, "Just a plain sentence.", s.Text)
	assert.Empty(t, s.Highlights)

	// Whitespace only is a soft failure.
	_, err = parseSummary("   \n ")
	assert.ErrorIs(t, err, ErrEmptySummary)

	// JSON with an empty summary field is a soft failure too.
	_, err = parseSummary(`{"summary": ""}`)
	assert.ErrorIs(t, err, ErrEmptySummary)
}
