package timesheet

import (
	"errors"
	"time"
)

// ErrIndexOutOfRange is returned by Edit and Remove when the index does not
// address an existing entry.
var ErrIndexOutOfRange = errors.New("entry index out of range")

// Entry is one submitted shift: the recorded times plus the derived totals.
// TotalHours and Overtime are always recomputed from the times, never set
// independently.
type Entry struct {
	Date       time.Time
	Day        string
	TimeIn     time.Time
	TimeOut    time.Time
	TotalHours float64
	Overtime   float64
	Reason     string
}

// NewEntry builds an entry for the given date and times with the derived
// fields computed.
func NewEntry(date, timeIn, timeOut time.Time, reason string) Entry {
	hours := HoursWorked(timeIn, timeOut)
	return Entry{
		Date:       date,
		Day:        date.Weekday().String(),
		TimeIn:     timeIn,
		TimeOut:    timeOut,
		TotalHours: hours,
		Overtime:   Overtime(hours),
		Reason:     reason,
	}
}

// Sheet is an insertion-ordered list of entries for one user. Display order
// is a presentation concern; the sheet only guarantees append order.
type Sheet struct {
	entries []Entry
}

// Len returns the number of entries.
func (s *Sheet) Len() int {
	return len(s.entries)
}

// Entries returns the entries in insertion order.
func (s *Sheet) Entries() []Entry {
	return s.entries
}

// Append adds an entry to the end of the sheet. The caller supplies the
// derived fields already computed (see NewEntry).
func (s *Sheet) Append(e Entry) {
	s.entries = append(s.entries, e)
}

// Edit replaces the times and reason of the entry at index i, recomputing
// TotalHours and Overtime from the new times. Other fields are preserved.
func (s *Sheet) Edit(i int, timeIn, timeOut time.Time, reason string) error {
	if i < 0 || i >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	e := s.entries[i]
	e.TimeIn = timeIn
	e.TimeOut = timeOut
	e.TotalHours = HoursWorked(timeIn, timeOut)
	e.Overtime = Overtime(e.TotalHours)
	e.Reason = reason
	s.entries[i] = e
	return nil
}

// Remove deletes the entry at index i, shifting later entries left.
func (s *Sheet) Remove(i int) error {
	if i < 0 || i >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

// TotalOvertime sums the overtime of every entry. Zero for an empty sheet.
func (s *Sheet) TotalOvertime() float64 {
	var total float64
	for _, e := range s.entries {
		total += e.Overtime
	}
	return total
}
