// Package scheduler runs the periodic catalog sync on a cron spec.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/carikost/carikost/internal/domain/catalog"
)

// Config controls the sync schedule.
type Config struct {
	Enabled  bool
	Schedule string // cron spec, e.g. "@every 6h"
	Keyword  string
}

// Scheduler wraps robfig/cron around the catalog sync operation.
type Scheduler struct {
	cfg     Config
	catalog catalog.Service
	logger  *slog.Logger
	cron    *cron.Cron
}

// New constructs a scheduler. It does nothing until Start is called.
func New(cfg Config, svc catalog.Service, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		catalog: svc,
		logger:  logger.With("component", "scheduler"),
		cron:    cron.New(),
	}
}

// Start registers the sync job and starts ticking. Disabled schedulers
// return immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("periodic sync disabled")
		return nil
	}
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("register sync job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("periodic sync started", "schedule", s.cfg.Schedule, "keyword", s.cfg.Keyword)
	return nil
}

// Stop halts the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runSync(ctx context.Context) {
	report, err := s.catalog.Sync(ctx, s.cfg.Keyword)
	if err != nil {
		s.logger.Error("scheduled sync failed", "error", err)
		return
	}
	s.logger.Info("scheduled sync complete", "total", report.Total, "sources", report.Sources)
}
