package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muniworks/overtime/internal/app"
	"github.com/muniworks/overtime/internal/auth"
	"github.com/muniworks/overtime/internal/dashboard"
	"github.com/muniworks/overtime/internal/employees"
	"github.com/muniworks/overtime/internal/entries"
	"github.com/muniworks/overtime/internal/observability"
	"github.com/muniworks/overtime/internal/org/departments"
	"github.com/muniworks/overtime/internal/org/secretariats"
	"github.com/muniworks/overtime/internal/periods"
	"github.com/muniworks/overtime/internal/platform/cache"
	"github.com/muniworks/overtime/internal/platform/db"
	"github.com/muniworks/overtime/internal/reports"
	"github.com/muniworks/overtime/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, dashboard caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	pdfClient := report.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	authService := auth.NewService(auth.NewRepository(pool))
	authMiddleware := &auth.Middleware{Service: authService, Logger: logger}

	secretariatsService := secretariats.NewService(secretariats.NewRepository(pool))
	departmentsService := departments.NewService(departments.NewRepository(pool))
	employeesService := employees.NewService(employees.NewRepository(pool))
	periodsService := periods.NewService(periods.NewRepository(pool))

	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardTTL)
	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), dashboardCache)

	entriesService := entries.NewService(entries.NewRepository(pool), dashboardCache, logger)
	reportsService := reports.NewService(reports.NewRepository(pool), pdfClient, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		Auth:                authMiddleware,
		SecretariatsHandler: secretariats.NewHandler(logger, secretariatsService),
		DepartmentsHandler:  departments.NewHandler(logger, departmentsService),
		EmployeesHandler:    employees.NewHandler(logger, employeesService),
		PeriodsHandler:      periods.NewHandler(logger, periodsService),
		EntriesHandler:      entries.NewHandler(logger, entriesService),
		ReportsHandler:      reports.NewHandler(logger, reportsService),
		DashboardHandler:    dashboard.NewHandler(logger, dashboardService),
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
