package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/volcano-analytics/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/volcano-analytics/internal/adapter/kafka"
	"github.com/couchcryptid/volcano-analytics/internal/analyzer"
	"github.com/couchcryptid/volcano-analytics/internal/config"
	"github.com/couchcryptid/volcano-analytics/internal/loader"
	"github.com/couchcryptid/volcano-analytics/internal/observability"
	"github.com/couchcryptid/volcano-analytics/internal/report"
	"github.com/couchcryptid/volcano-analytics/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	a := &analyzer.Analyzer{}
	cached := analyzer.NewCached(a, cfg.CacheSize, metrics)
	opts := report.Options{
		Country:            cfg.ReportCountry,
		ElevationThreshold: cfg.ReportElevationThreshold,
		Decade:             cfg.ReportDecade,
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, cached, opts, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// /readyz reports 503 until the dataset is loaded.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	records, err := loader.New(logger).Load(cfg.DataPath)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}
	if err := a.Load(records); err != nil {
		logger.Error("failed to initialize analyzer", "error", err)
		os.Exit(1)
	}
	metrics.RecordsLoaded.Set(float64(len(records)))

	var (
		writer    *kafkaadapter.Writer
		scheduler *schedule.Scheduler
	)
	if cfg.ReportPublishEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		job := schedule.NewReportJob(cached, opts, writer, logger, metrics, cfg.ShutdownTimeout)
		scheduler, err = schedule.New(cfg.ReportSchedule, job, logger)
		if err != nil {
			logger.Error("invalid report schedule", "schedule", cfg.ReportSchedule, "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("report publishing enabled", "schedule", cfg.ReportSchedule, "topic", cfg.KafkaReportTopic)
	} else {
		logger.Info("report publishing disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		if err := scheduler.Stop(shutdownCtx); err != nil {
			logger.Error("scheduler stop error", "error", err)
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
