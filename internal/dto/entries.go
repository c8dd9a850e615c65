package dto

// CreateEntryRequest represents the payload to record a completed shift
type CreateEntryRequest struct {
	Date    string `json:"date"`     // ISO 8601 format: YYYY-MM-DD
	TimeIn  string `json:"time_in"`  // HH:MM or HH:MM:SS
	TimeOut string `json:"time_out"` // HH:MM or HH:MM:SS
	Reason  string `json:"reason,omitempty"`
}

// UpdateEntryRequest represents an edit of an existing entry. Total hours and
// overtime are recomputed from the new times, never taken from the client.
type UpdateEntryRequest struct {
	Date    *string `json:"date"`
	TimeIn  *string `json:"time_in"`
	TimeOut *string `json:"time_out"`
	Reason  *string `json:"reason"`
}

// EntryResponse represents a time entry in responses
type EntryResponse struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Day        string  `json:"day"`
	TimeIn     string  `json:"time_in"`
	TimeOut    *string `json:"time_out"`
	TotalHours float64 `json:"total_hours"`
	Overtime   float64 `json:"overtime"`
	Reason     string  `json:"reason,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// EntryEnvelope wraps a single entry
type EntryEnvelope struct {
	Entry EntryResponse `json:"entry"`
}

// EntryListResponse is the insertion-ordered entry list for the current user
// plus the derived overtime total
type EntryListResponse struct {
	Entries       []EntryResponse `json:"entries"`
	TotalOvertime float64         `json:"total_overtime"`
}
