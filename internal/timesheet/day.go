package timesheet

import "github.com/fieldsheet/fieldsheet/internal/timeutil"

const (
	// SeedJobs is the number of blank jobs a fresh day starts with.
	SeedJobs = 3
	// MaxJobs is the hard cap on jobs per day; adds beyond it are no-ops.
	MaxJobs = 12

	lunchThreshold  = 4 * 60 // minutes worked before lunch is deducted
	travelThreshold = 6 * 60 // minutes worked before travel hour is deducted
	lunchDeduction  = 30
	travelDeduction = 60
)

// DayRecord holds one calendar day's jobs and derived totals. Employee
// and truck are stored per day; the store seeds them from its defaults
// when the day is first materialized.
type DayRecord struct {
	Date     string // ISO YYYY-MM-DD, the store key
	Employee string
	Truck    string
	OnCall   bool
	Jobs     []*JobEntry

	TotalMinutes int
	NetMinutes   int
}

// NewDayRecord returns a day seeded with blank jobs and zero totals.
func NewDayRecord(date, employee, truck string) *DayRecord {
	d := &DayRecord{Date: date, Employee: employee, Truck: truck}
	for i := 0; i < SeedJobs; i++ {
		d.Jobs = append(d.Jobs, NewJobEntry())
	}
	return d
}

// DayOfWeek derives the weekday name from the date key.
func (d *DayRecord) DayOfWeek() string {
	return timeutil.DayOfWeek(d.Date)
}

// Recalculate recomputes every job duration and then the day totals.
// Net minutes apply the deduction policy: one travel hour once the day
// passes six worked hours (waived on call), and a half-hour lunch once
// it passes four, clamped at zero. Pure function of jobs and the
// on-call flag.
func (d *DayRecord) Recalculate() {
	total := 0
	for _, j := range d.Jobs {
		j.Recalculate()
		total += j.TotalMinutes
	}
	d.TotalMinutes = total

	net := total
	if total > travelThreshold && !d.OnCall {
		net -= travelDeduction
	}
	if total > lunchThreshold {
		net -= lunchDeduction
	}
	if net < 0 {
		net = 0
	}
	d.NetMinutes = net
}

// AddJob appends a blank job and returns it, or nil when the day is
// already at capacity.
func (d *DayRecord) AddJob() *JobEntry {
	if len(d.Jobs) >= MaxJobs {
		return nil
	}
	j := NewJobEntry()
	d.Jobs = append(d.Jobs, j)
	d.Recalculate()
	return j
}

// RemoveJob deletes the job with the given ID and reports whether a job
// was removed. The last remaining job is never removed.
func (d *DayRecord) RemoveJob(id string) bool {
	if len(d.Jobs) <= 1 {
		return false
	}
	for i, j := range d.Jobs {
		if j.ID == id {
			d.Jobs = append(d.Jobs[:i], d.Jobs[i+1:]...)
			d.Recalculate()
			return true
		}
	}
	return false
}

// Job looks up a job by ID.
func (d *DayRecord) Job(id string) *JobEntry {
	for _, j := range d.Jobs {
		if j.ID == id {
			return j
		}
	}
	return nil
}

// Clone returns a deep copy of the day, used to hand a stable snapshot
// to background work while the original stays editable.
func (d *DayRecord) Clone() *DayRecord {
	c := *d
	c.Jobs = make([]*JobEntry, len(d.Jobs))
	for i, j := range d.Jobs {
		cj := *j
		c.Jobs[i] = &cj
	}
	return &c
}

// HasEntries reports whether any job on the day has at least one field
// filled in.
func (d *DayRecord) HasEntries() bool {
	for _, j := range d.Jobs {
		if !j.Empty() {
			return true
		}
	}
	return false
}
