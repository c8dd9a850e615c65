package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"DTR_BACK-END/internal/config"
	"DTR_BACK-END/internal/dto"
	"DTR_BACK-END/internal/logging"
	"DTR_BACK-END/internal/models"
	"DTR_BACK-END/internal/timesheet"
	"DTR_BACK-END/internal/utils"
)

// EntriesHandler manages the time-entry endpoints
type EntriesHandler struct {
	db     DB
	config *config.Config
	log    logging.Logger
}

// NewEntriesHandler creates a new EntriesHandler
func NewEntriesHandler(db DB, cfg *config.Config, log logging.Logger) *EntriesHandler {
	return &EntriesHandler{db: db, config: cfg, log: log}
}

// Entries dispatches by HTTP method for /api/entries and /api/entries/{id}
func (h *EntriesHandler) Entries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateEntry(w, r)
	case http.MethodGet:
		h.ListEntries(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateEntry(w, r)
	case http.MethodDelete:
		h.DeleteEntry(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// entryIDFromPath extracts the entry id from /api/entries/{id}
func entryIDFromPath(path string) (uuid.UUID, bool) {
	suffix := strings.TrimPrefix(path, "/api/entries/")
	if suffix == path || suffix == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSuffix(suffix, "/"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func toEntryResponse(e models.TimeEntry) dto.EntryResponse {
	resp := dto.EntryResponse{
		ID:         e.ID.String(),
		Date:       utils.FormatDate(e.Date),
		Day:        e.Date.Weekday().String(),
		TimeIn:     utils.FormatClock(e.TimeIn),
		TotalHours: e.TotalHours,
		Overtime:   e.Overtime,
		CreatedAt:  utils.FormatTimestamp(e.CreatedAt),
	}
	if e.TimeOut != nil {
		s := utils.FormatClock(*e.TimeOut)
		resp.TimeOut = &s
	}
	if e.Reason != nil {
		resp.Reason = *e.Reason
	}
	return resp
}

// CreateEntry handles POST /api/entries
// @Summary Record a completed shift
// @Tags entries
// @Accept json
// @Produce json
// @Param payload body dto.CreateEntryRequest true "Entry payload"
// @Success 201 {object} dto.EntryEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/entries [post]
func (h *EntriesHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateEntryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	if req.Date == "" || req.TimeIn == "" || req.TimeOut == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date, time_in, time_out are required")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format (YYYY-MM-DD)")
		return
	}
	timeIn, err := utils.ParseClock(date, req.TimeIn)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "time_in must be HH:MM or HH:MM:SS")
		return
	}
	timeOut, err := utils.ParseClock(date, req.TimeOut)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "time_out must be HH:MM or HH:MM:SS")
		return
	}
	if timeOut.Before(timeIn) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "time_out cannot be before time_in")
		return
	}

	// Derived fields are always recomputed server-side
	hours := timesheet.HoursWorked(timeIn, timeOut)
	overtime := timesheet.Overtime(hours)

	now := time.Now()
	entry := models.TimeEntry{
		ID:         uuid.New(),
		UserID:     userID,
		Date:       date,
		TimeIn:     timeIn,
		TimeOut:    &timeOut,
		TotalHours: hours,
		Overtime:   overtime,
		CreatedAt:  now,
	}
	if req.Reason != "" {
		entry.Reason = &req.Reason
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Database.QueryTimeout)
	defer cancel()

	_, err = h.db.Exec(ctx,
		`INSERT INTO time_entries (id, user_id, date, time_in, time_out, total_hours, overtime, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.UserID, entry.Date, entry.TimeIn, entry.TimeOut,
		entry.TotalHours, entry.Overtime, entry.Reason, entry.CreatedAt)
	if err != nil {
		h.log.Error(ctx, "entry insert failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.EntryEnvelope{Entry: toEntryResponse(entry)})
}

// ListEntries handles GET /api/entries
// @Summary List the current user's time entries in insertion order
// @Tags entries
// @Produce json
// @Success 200 {object} dto.EntryListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/entries [get]
func (h *EntriesHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Database.QueryTimeout)
	defer cancel()

	rows, err := h.db.Query(ctx,
		`SELECT id, user_id, date, time_in, time_out, total_hours, overtime, reason, created_at
		 FROM time_entries WHERE user_id = $1 ORDER BY created_at, id`,
		userID)
	if err != nil {
		h.log.Error(ctx, "entry list failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	defer rows.Close()

	var totalOvertime float64
	responses := []dto.EntryResponse{}
	for rows.Next() {
		var e models.TimeEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.TimeIn, &e.TimeOut,
			&e.TotalHours, &e.Overtime, &e.Reason, &e.CreatedAt); err != nil {
			h.log.Error(ctx, "entry scan failed", "err", err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
			return
		}
		totalOvertime += e.Overtime
		responses = append(responses, toEntryResponse(e))
	}
	if err := rows.Err(); err != nil {
		h.log.Error(ctx, "entry list failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.EntryListResponse{
		Entries:       responses,
		TotalOvertime: totalOvertime,
	})
}

// UpdateEntry handles PUT /api/entries/{id}
// @Summary Edit an entry; total hours and overtime are recomputed
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param payload body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/entries/{id} [put]
func (h *EntriesHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	entryID, ok := entryIDFromPath(r.URL.Path)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "entry id is required in the path")
		return
	}

	var req dto.UpdateEntryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Database.QueryTimeout)
	defer cancel()

	var e models.TimeEntry
	err := h.db.QueryRow(ctx,
		`SELECT id, user_id, date, time_in, time_out, total_hours, overtime, reason, created_at
		 FROM time_entries WHERE id = $1 AND user_id = $2`,
		entryID, userID).Scan(&e.ID, &e.UserID, &e.Date, &e.TimeIn, &e.TimeOut,
		&e.TotalHours, &e.Overtime, &e.Reason, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "No such entry for this user")
		return
	}
	if err != nil {
		h.log.Error(ctx, "entry lookup failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format (YYYY-MM-DD)")
			return
		}
		e.Date = date
	}
	if req.TimeIn != nil {
		timeIn, err := utils.ParseClock(e.Date, *req.TimeIn)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "time_in must be HH:MM or HH:MM:SS")
			return
		}
		e.TimeIn = timeIn
	}
	if req.TimeOut != nil {
		timeOut, err := utils.ParseClock(e.Date, *req.TimeOut)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "time_out must be HH:MM or HH:MM:SS")
			return
		}
		e.TimeOut = &timeOut
	}
	if req.Reason != nil {
		e.Reason = req.Reason
	}

	if e.TimeOut != nil {
		if e.TimeOut.Before(e.TimeIn) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "time_out cannot be before time_in")
			return
		}
		e.TotalHours = timesheet.HoursWorked(e.TimeIn, *e.TimeOut)
		e.Overtime = timesheet.Overtime(e.TotalHours)
	}

	_, err = h.db.Exec(ctx,
		`UPDATE time_entries
		 SET date = $1, time_in = $2, time_out = $3, total_hours = $4, overtime = $5, reason = $6
		 WHERE id = $7 AND user_id = $8`,
		e.Date, e.TimeIn, e.TimeOut, e.TotalHours, e.Overtime, e.Reason, e.ID, e.UserID)
	if err != nil {
		h.log.Error(ctx, "entry update failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.EntryEnvelope{Entry: toEntryResponse(e)})
}

// DeleteEntry handles DELETE /api/entries/{id}
// @Summary Delete an entry
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/entries/{id} [delete]
func (h *EntriesHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	entryID, ok := entryIDFromPath(r.URL.Path)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "entry id is required in the path")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Database.QueryTimeout)
	defer cancel()

	tag, err := h.db.Exec(ctx,
		"DELETE FROM time_entries WHERE id = $1 AND user_id = $2",
		entryID, userID)
	if err != nil {
		h.log.Error(ctx, "entry delete failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "No such entry for this user")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.RegisterResponse{Message: "Entry deleted"})
}
