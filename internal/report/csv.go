package report

import (
	"fmt"
	"strings"

	"github.com/fieldsheet/fieldsheet/internal/timesheet"
	"github.com/fieldsheet/fieldsheet/internal/timeutil"
)

// DailyCSV renders one day as comma-delimited text: metadata rows, a
// header row, one row per non-empty job, and total/net rows.
func DailyCSV(d *timesheet.DayRecord) string {
	var sb strings.Builder
	writeRow(&sb, "Employee", d.Employee)
	writeRow(&sb, "Truck", d.Truck)
	writeRow(&sb, "Date", d.Date)
	writeRow(&sb, "Day", d.DayOfWeek())
	writeRow(&sb, "On call", yesNo(d.OnCall))
	sb.WriteString("\n")

	writeRow(&sb, "Job #", "Location", "Travel Start", "Work Start", "Work Finish", "Travel Home", "Hours")
	for _, j := range d.Jobs {
		if j.Empty() {
			continue
		}
		writeRow(&sb, j.JobNumber, j.Location, j.TravelStart, j.WorkStart, j.WorkFinish, j.TravelHome,
			timeutil.FormatDecimalHours(j.TotalMinutes))
	}

	writeRow(&sb, "Total hours", timeutil.FormatDecimalHours(d.TotalMinutes))
	writeRow(&sb, "Net hours", timeutil.FormatDecimalHours(d.NetMinutes))
	return sb.String()
}

// WeeklyCSV renders the stored days in [start, end] as one table. The
// date, weekday, on-call and daily-total columns are populated only on
// each day's first job row so a day reads as a single visual group,
// and a totals row closes the table.
func WeeklyCSV(s *timesheet.Store, start, end string) string {
	days := s.Range(start, end)

	employee, truck := "", ""
	if len(days) > 0 {
		employee, truck = days[0].Employee, days[0].Truck
	} else {
		p := s.Preview(start)
		employee, truck = p.Employee, p.Truck
	}

	var sb strings.Builder
	writeRow(&sb, "Employee", employee)
	writeRow(&sb, "Truck", truck)
	writeRow(&sb, "Period", start+" to "+end)
	sb.WriteString("\n")

	writeRow(&sb, "Date", "Day", "On Call", "Job #", "Location",
		"Travel Start", "Work Start", "Work Finish", "Travel Home",
		"Job Hours", "Day Total", "Day Net")

	for _, d := range days {
		first := true
		for _, j := range d.Jobs {
			if j.Empty() {
				continue
			}
			row := []string{"", "", "", j.JobNumber, j.Location,
				j.TravelStart, j.WorkStart, j.WorkFinish, j.TravelHome,
				timeutil.FormatDecimalHours(j.TotalMinutes), "", ""}
			if first {
				row[0] = d.Date
				row[1] = d.DayOfWeek()
				row[2] = yesNo(d.OnCall)
				row[10] = timeutil.FormatDecimalHours(d.TotalMinutes)
				row[11] = timeutil.FormatDecimalHours(d.NetMinutes)
				first = false
			}
			writeRow(&sb, row...)
		}
		if first {
			// Stored day whose jobs are all empty: keep its summary row.
			writeRow(&sb, d.Date, d.DayOfWeek(), yesNo(d.OnCall),
				"", "", "", "", "", "", "",
				timeutil.FormatDecimalHours(d.TotalMinutes),
				timeutil.FormatDecimalHours(d.NetMinutes))
		}
	}

	total, net := s.RangeTotals(start, end)
	writeRow(&sb, "Week totals", "", "", "", "", "", "", "", "", "",
		timeutil.FormatDecimalHours(total), timeutil.FormatDecimalHours(net))
	return sb.String()
}

// Filename builds a safe export filename from the employee name and
// date labels, replacing anything outside [A-Za-z0-9_.-] with "_".
func Filename(employee string, labels ...string) string {
	parts := append([]string{employee}, labels...)
	return sanitize(strings.Join(parts, "_")) + ".csv"
}

func sanitize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z',
			r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(quote(f))
	}
	sb.WriteString("\n")
}

// quote wraps a field in quotes if it contains a comma, quote, or
// newline, doubling internal quotes.
func quote(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
