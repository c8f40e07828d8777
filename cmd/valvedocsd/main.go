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

	"github.com/joho/godotenv"

	"github.com/valvetrack/valve-docs/internal/common"
	"github.com/valvetrack/valve-docs/internal/export"
	"github.com/valvetrack/valve-docs/internal/ingest"
	"github.com/valvetrack/valve-docs/internal/pdftext"
	"github.com/valvetrack/valve-docs/internal/pipeline"
	"github.com/valvetrack/valve-docs/internal/repository"
	"github.com/valvetrack/valve-docs/internal/resolver"
	"github.com/valvetrack/valve-docs/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	valves := repository.NewValveRepository(db, logger)
	docs := repository.NewDocumentRepository(db, logger)
	res := resolver.NewResolver(valves, logger)
	pipe := pipeline.NewPipeline(pdftext.NewExtractor(logger), docs, res, logger)
	exporter := export.NewService(valves, docs, logger)

	if cfg.Ingest.WatchDir != "" {
		paths, errs, werr := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{cfg.Ingest.WatchDir},
			InitialScan: true,
			Debounce:    cfg.Ingest.Debounce,
		}, logger)
		if werr != nil {
			logger.Error("watcher start failed", "dir", cfg.Ingest.WatchDir, "error", werr)
			os.Exit(1)
		}
		go ingest.NewService(pipe, logger).Run(ctx, paths, errs)
		logger.Info("watcher.started", "dir", cfg.Ingest.WatchDir)
	}

	handler := server.NewHandler(cfg.Server, pipe, valves, docs, exporter, logger)
	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           server.NewRouter(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http.listening", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown.start")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	logger.Info("shutdown.ok")
}
