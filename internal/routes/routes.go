package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"DTR_BACK-END/internal/config"
	"DTR_BACK-END/internal/handlers"
	"DTR_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	authHandler *handlers.AuthHandler,
	entriesHandler *handlers.EntriesHandler,
	shiftHandler *handlers.ShiftHandler,
	healthHandler *handlers.HealthHandler,
	cfg *config.Config,
) {
	jwtCfg := &cfg.JWT

	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", authHandler.Register)
	http.HandleFunc("/api/auth/login", authHandler.Login)
	http.HandleFunc("/api/auth/logout", authHandler.Logout)
	http.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(authHandler.GetProfile, jwtCfg))

	// Time entry routes
	http.HandleFunc("/api/entries", middleware.AuthMiddleware(entriesHandler.Entries, jwtCfg))
	http.HandleFunc("/api/entries/", middleware.AuthMiddleware(entriesHandler.Entries, jwtCfg))

	// In-progress shift routes
	http.HandleFunc("/api/shift/time-in", middleware.AuthMiddleware(shiftHandler.TimeIn, jwtCfg))
	http.HandleFunc("/api/shift/time-out", middleware.AuthMiddleware(shiftHandler.TimeOut, jwtCfg))
	http.HandleFunc("/api/shift/submit", middleware.AuthMiddleware(shiftHandler.Submit, jwtCfg))

	// API documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("DTR backend is running."))
}
