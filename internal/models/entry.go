package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is one submitted shift for a user. TotalHours and Overtime are
// derived from TimeIn/TimeOut on every write; they are never accepted from
// the client.
type TimeEntry struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	Date       time.Time  `json:"date" db:"date"`
	TimeIn     time.Time  `json:"time_in" db:"time_in"`
	TimeOut    *time.Time `json:"time_out" db:"time_out"` // nil while a shift is still open
	TotalHours float64    `json:"total_hours" db:"total_hours"`
	Overtime   float64    `json:"overtime" db:"overtime"`
	Reason     *string    `json:"reason" db:"reason"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
