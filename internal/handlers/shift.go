package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"DTR_BACK-END/internal/config"
	"DTR_BACK-END/internal/dto"
	"DTR_BACK-END/internal/logging"
	"DTR_BACK-END/internal/timesheet"
	"DTR_BACK-END/internal/utils"
)

// ShiftHandler tracks each user's in-progress shift. The open shift lives in
// memory only; nothing touches the database until submit.
type ShiftHandler struct {
	db     DB
	config *config.Config
	log    logging.Logger

	mu     sync.Mutex
	shifts map[uuid.UUID]*timesheet.Shift
}

// NewShiftHandler creates a new ShiftHandler
func NewShiftHandler(db DB, cfg *config.Config, log logging.Logger) *ShiftHandler {
	return &ShiftHandler{
		db:     db,
		config: cfg,
		log:    log,
		shifts: make(map[uuid.UUID]*timesheet.Shift),
	}
}

func (h *ShiftHandler) shiftFor(userID uuid.UUID) *timesheet.Shift {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.shifts[userID]
	if !ok {
		s = &timesheet.Shift{}
		h.shifts[userID] = s
	}
	return s
}

// TimeIn handles POST /api/shift/time-in
// @Summary Record the start of the current shift
// @Tags shift
// @Produce json
// @Success 200 {object} dto.ShiftEventResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already timed in"
// @Router /api/shift/time-in [post]
func (h *ShiftHandler) TimeIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	s := h.shiftFor(userID)
	h.mu.Lock()
	err := s.TimeIn(time.Now())
	h.mu.Unlock()
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "Rejected", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ShiftEventResponse{
		Message: "Time in recorded",
		TimedIn: true,
	})
}

// TimeOut handles POST /api/shift/time-out
// @Summary Record the end of the current shift
// @Tags shift
// @Produce json
// @Success 200 {object} dto.ShiftEventResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Not timed in, or already timed out"
// @Router /api/shift/time-out [post]
func (h *ShiftHandler) TimeOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	s := h.shiftFor(userID)
	h.mu.Lock()
	err := s.TimeOut(time.Now())
	h.mu.Unlock()
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "Rejected", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ShiftEventResponse{
		Message:  "Time out recorded",
		TimedIn:  true,
		TimedOut: true,
	})
}

// Submit handles POST /api/shift/submit
// @Summary Close the current shift and persist it as a time entry
// @Tags shift
// @Accept json
// @Produce json
// @Param payload body dto.SubmitShiftRequest false "Overtime reason"
// @Success 201 {object} dto.EntryEnvelope
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Shift incomplete"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/shift/submit [post]
func (h *ShiftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SubmitShiftRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}
	}

	now := time.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Build the entry first and clear the shift only after the insert
	// succeeds, so a storage failure leaves the shift intact for a retry.
	s := h.shiftFor(userID)
	h.mu.Lock()
	entry, err := s.Entry(date, req.Reason)
	h.mu.Unlock()
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "Rejected", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Database.QueryTimeout)
	defer cancel()

	var reason *string
	if entry.Reason != "" {
		reason = &entry.Reason
	}
	entryID := uuid.New()
	_, err = h.db.Exec(ctx,
		`INSERT INTO time_entries (id, user_id, date, time_in, time_out, total_hours, overtime, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entryID, userID, entry.Date, entry.TimeIn, entry.TimeOut,
		entry.TotalHours, entry.Overtime, reason, now)
	if err != nil {
		h.log.Error(ctx, "shift submit insert failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	h.mu.Lock()
	s.Reset()
	h.mu.Unlock()

	timeOut := entry.TimeOut
	resp := dto.EntryResponse{
		ID:         entryID.String(),
		Date:       utils.FormatDate(entry.Date),
		Day:        entry.Day,
		TimeIn:     utils.FormatClock(entry.TimeIn),
		TotalHours: entry.TotalHours,
		Overtime:   entry.Overtime,
		Reason:     entry.Reason,
		CreatedAt:  utils.FormatTimestamp(now),
	}
	out := utils.FormatClock(timeOut)
	resp.TimeOut = &out

	utils.WriteJSONResponse(w, http.StatusCreated, dto.EntryEnvelope{Entry: resp})
}
