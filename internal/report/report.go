// Package report assembles timesheet data into human-readable report
// text and CSV export text. Output is inert strings; callers hand them
// to the summarizer, a file download, or a mail client.
package report

import (
	"fmt"
	"strings"

	"github.com/fieldsheet/fieldsheet/internal/timesheet"
	"github.com/fieldsheet/fieldsheet/internal/timeutil"
)

const deductionNote = "Note: net hours deduct a 30-minute lunch once a day passes four worked hours " +
	"and a one-hour travel allowance once it passes six; the travel deduction is waived on on-call days."

// Daily renders the full report block for a single day: employee and
// truck header, date and weekday, on-call flag, every non-empty job
// with its times and hours, and the day totals.
func Daily(d *timesheet.DayRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Employee: %s\n", d.Employee)
	fmt.Fprintf(&sb, "Truck: %s\n", d.Truck)
	sb.WriteString(dayBody(d))
	return sb.String()
}

// Weekly renders the report for an inclusive date range: header frame,
// the per-day block for every stored day in the range, grand totals,
// and the deduction footnote. Employee and truck are taken from the
// first day in range, falling back to the store defaults via preview
// when the range is empty.
func Weekly(s *timesheet.Store, start, end string) string {
	days := s.Range(start, end)

	employee, truck := "", ""
	if len(days) > 0 {
		employee, truck = days[0].Employee, days[0].Truck
	} else {
		p := s.Preview(start)
		employee, truck = p.Employee, p.Truck
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Weekly timesheet for %s (truck %s)\n", employee, truck)
	fmt.Fprintf(&sb, "Period: %s to %s\n", start, end)

	if len(days) == 0 {
		sb.WriteString("\nNo job entries recorded.\n")
	}
	for _, d := range days {
		sb.WriteString("\n")
		sb.WriteString(dayBody(d))
	}

	total, net := s.RangeTotals(start, end)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Week total hours: %s\n", timeutil.FormatDecimalHours(total))
	fmt.Fprintf(&sb, "Week net hours: %s\n", timeutil.FormatDecimalHours(net))
	sb.WriteString("\n")
	sb.WriteString(deductionNote)
	sb.WriteString("\n")
	return sb.String()
}

// dayBody is the per-day block shared by the daily report and the
// weekly report's repeated sections. It omits employee/truck, which
// belong to the surrounding frame.
func dayBody(d *timesheet.DayRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Date: %s (%s)\n", d.Date, d.DayOfWeek())
	fmt.Fprintf(&sb, "On call: %s\n", yesNo(d.OnCall))

	n := 0
	for _, j := range d.Jobs {
		if j.Empty() {
			continue
		}
		n++
		fmt.Fprintf(&sb, "Job %d%s\n", n, jobLabel(j))
		writeTime(&sb, "Travel start", j.TravelStart)
		writeTime(&sb, "Work start", j.WorkStart)
		writeTime(&sb, "Work finish", j.WorkFinish)
		writeTime(&sb, "Travel home", j.TravelHome)
		fmt.Fprintf(&sb, "  Hours: %s\n", timeutil.FormatDecimalHours(j.TotalMinutes))
	}
	if n == 0 {
		sb.WriteString("No job entries recorded.\n")
	}

	fmt.Fprintf(&sb, "Total hours: %s\n", timeutil.FormatDecimalHours(d.TotalMinutes))
	fmt.Fprintf(&sb, "Net hours: %s\n", timeutil.FormatDecimalHours(d.NetMinutes))
	return sb.String()
}

func jobLabel(j *timesheet.JobEntry) string {
	switch {
	case j.JobNumber != "" && j.Location != "":
		return fmt.Sprintf(" (#%s, %s)", j.JobNumber, j.Location)
	case j.JobNumber != "":
		return fmt.Sprintf(" (#%s)", j.JobNumber)
	case j.Location != "":
		return fmt.Sprintf(" (%s)", j.Location)
	}
	return ""
}

func writeTime(sb *strings.Builder, label, clock string) {
	if clock == "" {
		return
	}
	fmt.Fprintf(sb, "  %s: %s\n", label, clock)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
