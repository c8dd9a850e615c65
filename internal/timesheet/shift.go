package timesheet

import (
	"errors"
	"time"
)

// Shift transition errors. These are user-visible rejections, not failures.
var (
	ErrAlreadyTimedIn  = errors.New("already timed in")
	ErrNotTimedIn      = errors.New("not timed in yet")
	ErrAlreadyTimedOut = errors.New("already timed out")
	ErrShiftIncomplete = errors.New("time in and time out required before submit")
)

// Shift tracks one in-progress work day: nothing is recorded, then a time-in,
// then a time-out, and Submit turns the pair into a single Entry and resets
// the shift. Invalid transitions are rejected rather than overwritten.
type Shift struct {
	timeIn  time.Time
	timeOut time.Time
}

// TimeIn records the start of the shift. Rejected when a time-in is already
// recorded.
func (s *Shift) TimeIn(at time.Time) error {
	if !s.timeIn.IsZero() {
		return ErrAlreadyTimedIn
	}
	s.timeIn = at
	return nil
}

// TimeOut records the end of the shift. Rejected when no time-in exists or a
// time-out is already recorded.
func (s *Shift) TimeOut(at time.Time) error {
	if s.timeIn.IsZero() {
		return ErrNotTimedIn
	}
	if !s.timeOut.IsZero() {
		return ErrAlreadyTimedOut
	}
	s.timeOut = at
	return nil
}

// TimedIn reports whether a time-in has been recorded.
func (s *Shift) TimedIn() bool { return !s.timeIn.IsZero() }

// TimedOut reports whether a time-out has been recorded.
func (s *Shift) TimedOut() bool { return !s.timeOut.IsZero() }

// Entry produces the entry for the completed shift without clearing it.
// Callers that persist the entry should Reset only after the write succeeds,
// so a failed write leaves the shift intact for a retry. Rejected until both
// times are recorded.
func (s *Shift) Entry(date time.Time, reason string) (Entry, error) {
	if s.timeIn.IsZero() || s.timeOut.IsZero() {
		return Entry{}, ErrShiftIncomplete
	}
	return NewEntry(date, s.timeIn, s.timeOut, reason), nil
}

// Reset clears the shift back to its initial state.
func (s *Shift) Reset() {
	s.timeIn = time.Time{}
	s.timeOut = time.Time{}
}

// Submit produces the entry for the completed shift and clears the shift
// back to its initial state. Rejected until both times are recorded.
func (s *Shift) Submit(date time.Time, reason string) (Entry, error) {
	e, err := s.Entry(date, reason)
	if err != nil {
		return Entry{}, err
	}
	s.Reset()
	return e, nil
}
