// @title DTR Backend API
// @version 1.0
// @description DTR Backend API for daily time-in reporting

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/cors"

	_ "DTR_BACK-END/docs" // This is required for swagger
	"DTR_BACK-END/internal/config"
	"DTR_BACK-END/internal/handlers"
	"DTR_BACK-END/internal/logging"
	"DTR_BACK-END/internal/migrations"
	"DTR_BACK-END/internal/routes"
)

// runMigrations applies the embedded schema migrations once, before the
// server accepts requests. goose needs a database/sql handle, so a short-lived
// one is opened through the pgx stdlib adapter and closed right after.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	ctx := context.Background()

	dsn := cfg.GetDSN()

	// Apply schema migrations at startup, never inside request handlers
	{
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := runMigrations(migrateCtx, dsn); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	// One shared pool for the whole process; each request acquires and
	// releases through it
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "dtr-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	{
		pingCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	// --- HTTP Handlers ---

	authHandler := handlers.NewAuthHandler(pool, cfg, logger.With("component", "auth"))
	entriesHandler := handlers.NewEntriesHandler(pool, cfg, logger.With("component", "entries"))
	shiftHandler := handlers.NewShiftHandler(pool, cfg, logger.With("component", "shift"))
	healthHandler := handlers.NewHealthHandler(pool)

	routes.SetupRoutes(authHandler, entriesHandler, shiftHandler, healthHandler, cfg)

	// --- HTTP Server + Graceful Shutdown ---

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})
	handler := c.Handler(http.DefaultServeMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server shutdown error", "err", err)
	}
	logger.Info(ctx, "server stopped")
}
