package dto

// ShiftEventResponse is returned by the time-in and time-out endpoints
type ShiftEventResponse struct {
	Message  string `json:"message"`
	TimedIn  bool   `json:"timed_in"`
	TimedOut bool   `json:"timed_out"`
}

// SubmitShiftRequest closes the current shift and records it as an entry.
// Reason is required by policy when the shift produced overtime, but that is
// enforced on the client.
type SubmitShiftRequest struct {
	Reason string `json:"reason,omitempty"`
}
