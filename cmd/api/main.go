package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cadence-platform/internal/analytics"
	"cadence-platform/internal/appointments"
	"cadence-platform/internal/audit"
	"cadence-platform/internal/auth"
	"cadence-platform/internal/cadence"
	"cadence-platform/internal/chatlog"
	"cadence-platform/internal/companies"
	"cadence-platform/internal/config"
	"cadence-platform/internal/events"
	"cadence-platform/internal/followups"
	"cadence-platform/internal/gateway"
	"cadence-platform/internal/httpapi"
	"cadence-platform/internal/interactions"
	"cadence-platform/internal/templates"
	"cadence-platform/internal/tracking"
	"cadence-platform/pkg/logger"
	"cadence-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Services over Postgres repositories.
	auditSvc := audit.NewService(audit.NewPostgresRepo(db), log)
	companySvc := companies.NewService(companies.NewPostgresRepo(db), auditSvc)
	interactionSvc := interactions.NewService(interactions.NewPostgresRepo(db))
	appointmentSvc := appointments.NewService(appointments.NewPostgresRepo(db))
	followUpSvc := followups.NewService(followups.NewPostgresRepo(db))
	eventSvc := events.NewService(events.NewPostgresRepo(db))
	cadenceSvc := cadence.NewService(cadence.NewPostgresRepo(db), rdb, cfg.Gateway.RulesCacheTTL)
	templateSvc := templates.NewService(templates.NewPostgresRepo(db))
	trackingSvc := tracking.NewService(tracking.NewPostgresRepo(db))
	analyticsSvc := analytics.NewService(analytics.NewPostgresRepo(db))
	chatRepo := chatlog.NewPostgresRepo(db)

	handlers := httpapi.Handlers{
		Auth:         authManager,
		Companies:    companySvc,
		Interactions: interactionSvc,
		Appointments: appointmentSvc,
		FollowUps:    followUpSvc,
		Events:       eventSvc,
		Cadence:      cadenceSvc,
		Templates:    templateSvc,
		Tracking:     trackingSvc,
		Analytics:    analyticsSvc,
		Audit:        auditSvc,
		Chat:         chatRepo,
	}
	gw := gateway.Handler{
		Secret:       cfg.Gateway.WebhookSecret,
		Interactions: interactionSvc,
		Companies:    companySvc,
		Events:       eventSvc,
		Cadence:      cadenceSvc,
		Chat:         chatRepo,
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, handlers, gw, auth.RequireAccessToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
