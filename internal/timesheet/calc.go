package timesheet

import "time"

// StandardShift is the number of worked hours beyond which time counts as
// overtime. Fixed company policy, not configurable per user.
const StandardShift = 9.0

// HoursWorked returns the elapsed time between timeIn and timeOut in hours.
// A timeOut earlier than timeIn yields a negative result; callers that need
// to reject that case must check before storing.
func HoursWorked(timeIn, timeOut time.Time) float64 {
	return timeOut.Sub(timeIn).Hours()
}

// Overtime returns the portion of hours beyond the standard shift, zero when
// hours is at or below the threshold.
func Overtime(hours float64) float64 {
	if hours > StandardShift {
		return hours - StandardShift
	}
	return 0
}
