package handlers

import (
	"context"
	"net/http"
	"time"

	"DTR_BACK-END/internal/dto"
	"DTR_BACK-END/internal/utils"
)

// pingTimeout bounds the readiness probe so a stalled database cannot hang
// the endpoint.
const pingTimeout = 2 * time.Second

// HealthHandler serves the probe endpoints for the DTR backend.
type HealthHandler struct {
	db DB
}

// NewHealthHandler creates a HealthHandler over the entry store.
func NewHealthHandler(db DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck reports that the process is serving requests. It never touches
// the database.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// LivenessCheck is the restart signal for orchestrators; a response at all
// means the process is alive.
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck verifies the entry store is reachable before reporting
// ready. Login and time tracking both need the database, so an unreachable
// store means the service cannot do useful work.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "unavailable",
			Details: map[string]any{"database": err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ready",
		Details: map[string]any{"database": "ok"},
	})
}
