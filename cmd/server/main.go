package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-renderer/internal/adapter/http"
	repo "resume-renderer/internal/adapter/repository"
	"resume-renderer/internal/config"
	"resume-renderer/internal/infrastructure/migration"
	"resume-renderer/internal/logger"
	"resume-renderer/internal/usecase"
	infra "resume-renderer/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	ctx := context.Background()

	// infra setup
	jobsPool, err := infra.NewJobsPool(ctx, cfg.JobsDatabaseURL)
	if err != nil {
		slog.Warn("jobs DB not available, using in-memory exports", "error", err)
		jobsPool = nil
	}
	if jobsPool != nil {
		defer jobsPool.Close()
		if err := migration.RunMigrations(ctx, jobsPool); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	renderer := infra.NewChromedpRenderer(cfg.ChromePath, cfg.PDFTimeout)
	exportsRepo := repo.NewExportsRepo(jobsPool)
	snapshots := repo.NewSnapshotRepo(jobsPool)
	processor := usecase.NewProcessor(renderer, exportsRepo, snapshots, usecase.Options{
		ArtifactDir: cfg.ArtifactDir,
		Attempts:    cfg.RenderAttempts,
		Backoff:     cfg.RenderBackoff,
	})

	app := fiber.New(fiber.Config{BodyLimit: 2 * 1024 * 1024})
	httpadapter.NewHandler(processor, exportsRepo).Register(app)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
