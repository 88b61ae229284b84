package timesheet

import (
	"sort"

	"github.com/fieldsheet/fieldsheet/internal/timeutil"
)

// Store maps ISO date keys to day records and owns every record it
// holds. Days are materialized lazily: viewing a date never inserts a
// key, only the first edit does. There is no delete operation.
//
// The store assumes a single writer; every mutation runs synchronously
// followed by a recompute, so readers only ever observe fully derived
// state.
type Store struct {
	days map[string]*DayRecord

	// Defaults seeded into newly materialized days.
	defaultEmployee string
	defaultTruck    string
}

// NewStore returns an empty store whose new days are seeded with the
// given employee and truck.
func NewStore(employee, truck string) *Store {
	return &Store{
		days:            make(map[string]*DayRecord),
		defaultEmployee: employee,
		defaultTruck:    truck,
	}
}

// Lookup returns the stored record for a date, or nil if the date has
// never been edited.
func (s *Store) Lookup(date string) *DayRecord {
	return s.days[date]
}

// Preview returns the stored record for a date, or a synthesized
// default that is NOT inserted into the store. Use it for display so
// merely viewing a date never counts as an edit.
func (s *Store) Preview(date string) *DayRecord {
	if d, ok := s.days[date]; ok {
		return d
	}
	return NewDayRecord(date, s.defaultEmployee, s.defaultTruck)
}

// Day returns the record for a date, materializing and storing a
// default one on first use. Call it at the point of an actual edit.
// Invalid date keys never enter the map; the caller just gets a
// throwaway default.
func (s *Store) Day(date string) *DayRecord {
	if d, ok := s.days[date]; ok {
		return d
	}
	d := NewDayRecord(date, s.defaultEmployee, s.defaultTruck)
	if timeutil.ValidDate(date) {
		s.days[date] = d
	}
	return d
}

// Adopt stores a previewed record under its own date key, preserving
// edits made against a synthesized default.
func (s *Store) Adopt(d *DayRecord) {
	if !timeutil.ValidDate(d.Date) {
		return
	}
	s.days[d.Date] = d
}

// Dates returns all stored date keys in ascending order.
func (s *Store) Dates() []string {
	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range returns the stored records with start <= date <= end, ascending.
// Fixed-width ISO keys make the lexicographic comparison a date
// comparison. Dates in range but never edited are simply absent.
func (s *Store) Range(start, end string) []*DayRecord {
	var out []*DayRecord
	for _, k := range s.Dates() {
		if k >= start && k <= end {
			out = append(out, s.days[k])
		}
	}
	return out
}

// RangeTotals sums total and net minutes across the stored days in the
// inclusive range.
func (s *Store) RangeTotals(start, end string) (total, net int) {
	for _, d := range s.Range(start, end) {
		total += d.TotalMinutes
		net += d.NetMinutes
	}
	return total, net
}
