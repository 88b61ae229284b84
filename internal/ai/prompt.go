package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/fieldsheet/fieldsheet/internal/timeutil"
)

// payload is the structured record sent to the model: employee, period,
// every recorded day with its jobs, and the derived totals.
type payload struct {
	Employee    string       `json:"employee"`
	Truck       string       `json:"truck"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
	Days        []dayPayload `json:"days"`
	TotalHours  string       `json:"total_hours"`
	NetHours    string       `json:"net_hours"`
}

type dayPayload struct {
	Date       string       `json:"date"`
	Weekday    string       `json:"weekday"`
	OnCall     bool         `json:"on_call"`
	Jobs       []jobPayload `json:"jobs"`
	TotalHours string       `json:"total_hours"`
	NetHours   string       `json:"net_hours"`
}

type jobPayload struct {
	JobNumber   string `json:"job_number,omitempty"`
	Location    string `json:"location,omitempty"`
	TravelStart string `json:"travel_start,omitempty"`
	WorkStart   string `json:"work_start,omitempty"`
	WorkFinish  string `json:"work_finish,omitempty"`
	TravelHome  string `json:"travel_home,omitempty"`
	Hours       string `json:"hours"`
}

func buildPayload(req Request) payload {
	p := payload{
		PeriodStart: req.Start,
		PeriodEnd:   req.End,
	}
	total, net := 0, 0
	for _, d := range req.Days {
		if p.Employee == "" {
			p.Employee, p.Truck = d.Employee, d.Truck
		}
		dp := dayPayload{
			Date:       d.Date,
			Weekday:    d.DayOfWeek(),
			OnCall:     d.OnCall,
			TotalHours: timeutil.FormatDecimalHours(d.TotalMinutes),
			NetHours:   timeutil.FormatDecimalHours(d.NetMinutes),
		}
		for _, j := range d.Jobs {
			if j.Empty() {
				continue
			}
			dp.Jobs = append(dp.Jobs, jobPayload{
				JobNumber:   j.JobNumber,
				Location:    j.Location,
				TravelStart: j.TravelStart,
				WorkStart:   j.WorkStart,
				WorkFinish:  j.WorkFinish,
				TravelHome:  j.TravelHome,
				Hours:       timeutil.FormatDecimalHours(j.TotalMinutes),
			})
		}
		p.Days = append(p.Days, dp)
		total += d.TotalMinutes
		net += d.NetMinutes
	}
	p.TotalHours = timeutil.FormatDecimalHours(total)
	p.NetHours = timeutil.FormatDecimalHours(net)
	return p
}

// responseSchema is the JSON schema for Summary, reflected from the Go
// type so prompt and parser can never drift apart.
func responseSchema() string {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&Summary{})
	b, _ := json.Marshal(schema)
	return string(b)
}

func buildSystemPrompt() string {
	return fmt.Sprintf(`You are a payroll assistant for a field-service crew. You receive a timesheet as JSON: one record per day with its jobs, travel and work times, and derived hour totals. Net hours already have lunch and travel deductions applied.

Write a short plain-language summary of the period for the employee's supervisor: where the crew worked, how the hours break down, and anything notable (long days, on-call days, missing times).

Rules:
- Use only the data provided; never invent jobs, dates, or hours
- Keep the summary under 120 words
- Mention on-call days explicitly

Return valid JSON matching this schema:
%s`, responseSchema())
}

func buildUserPrompt(req Request) string {
	data, _ := json.Marshal(buildPayload(req))
	return string(data)
}

// parseSummary accepts either the requested JSON shape or, as a
// fallback, plain text. Whitespace-only responses are a soft failure.
func parseSummary(raw string) (*Summary, error) {
	raw = strings.TrimSpace(raw)
	var s Summary
	if err := json.Unmarshal([]byte(raw), &s); err == nil && strings.TrimSpace(s.Text) != "" {
		s.Text = strings.TrimSpace(s.Text)
		return &s, nil
	}
	if raw == "" || strings.HasPrefix(raw, "{") {
		return nil, ErrEmptySummary
	}
	return &Summary{Text: raw}, nil
}
