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

	"decision-platform/internal/analysis"
	"decision-platform/internal/audit"
	"decision-platform/internal/auth"
	"decision-platform/internal/config"
	"decision-platform/internal/decisions"
	"decision-platform/internal/extraction"
	"decision-platform/internal/history"
	"decision-platform/internal/httpapi"
	"decision-platform/internal/intake"
	"decision-platform/internal/reporting"
	"decision-platform/internal/risk"
	"decision-platform/internal/workflow"
	"decision-platform/pkg/logger"
	"decision-platform/pkg/utils"

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

	// Pipeline services. Audit and decision records are durable in Postgres;
	// per-user history is a capped Redis list.
	auditSvc := audit.NewService(audit.NewPostgresRepo(db, cfg.Engine.MaxAuditEvents))
	historySvc := history.NewService(history.NewRedisRepo(rdb, cfg.Engine.MaxHistoryEntries))
	decisionRepo := decisions.NewPostgresRepo(db)

	engine, err := workflow.NewEngine(workflow.Deps{
		Intake:    intake.New(intake.WithMaxTextLength(cfg.Engine.MaxTextLength)),
		Analyzer:  analysis.NewAnalyzer(analysis.DefaultRuleset()),
		Extractor: extraction.NewExtractor(extraction.DefaultRuleset(), extraction.WithMaxActions(cfg.Engine.MaxActions)),
		Evaluator: risk.NewEvaluator(risk.WithThresholds(risk.Thresholds{
			High:   cfg.Engine.RiskHighThreshold,
			Medium: cfg.Engine.RiskMediumThreshold,
		})),
		Audit: auditSvc,
	})
	if err != nil {
		log.Error("engine init failed", "err", err)
		os.Exit(1)
	}

	h := httpapi.Handlers{
		Auth:      authManager,
		Engine:    engine,
		History:   historySvc,
		Decisions: decisionRepo,
		Reports:   reporting.NewService(decisionRepo),
		Audit:     auditSvc,
	}
	if cfg.Engine.SubmitRatePerMinute > 0 {
		h.Limiter = httpapi.RedisRateLimiter{
			RDB:    rdb,
			Limit:  cfg.Engine.SubmitRatePerMinute,
			Window: time.Minute,
		}
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, h, auth.RequireAccessToken(authManager))

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
