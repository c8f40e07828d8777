package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/valvetrack/valve-docs/internal/pipeline"
	"github.com/valvetrack/valve-docs/internal/resolver"
)

// Service drains watcher events and runs each dropped file through the
// pipeline. One file at a time: runs are synchronous and independent.
type Service struct {
	pipe   *pipeline.Pipeline
	logger *slog.Logger
}

func NewService(pipe *pipeline.Pipeline, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pipe: pipe, logger: logger}
}

// Run blocks until ctx is cancelled, processing every path emitted by the
// watcher. Failures are logged and skipped; a bad file must not stall the
// drop folder.
func (s *Service) Run(ctx context.Context, paths <-chan string, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				return
			}
			s.logger.Error("ingest.watch_error", "error", err)
		case path, ok := <-paths:
			if !ok {
				return
			}
			if err := s.ProcessFile(ctx, path); err != nil {
				s.logger.Error("ingest.failed", "path", path, "error", err)
			}
		}
	}
}

// ProcessFile runs one on-disk PDF through the full pipeline.
func (s *Service) ProcessFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("ingest.close_failed", "path", path, "error", cerr)
		}
	}()

	_, err = s.pipe.Process(ctx, f, pipeline.ProcessRequest{
		Filename:   filepath.Base(path),
		StoredPath: path,
		Context:    resolver.ExtractionContext{},
	})
	return err
}
