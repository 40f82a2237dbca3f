// Package scheduler triggers periodic sync runs so the ledger stays current
// without manual triggers.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portssvc "github.com/poolcost/pool-cost-tracker/internal/core/ports/services"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
)

// Scheduler runs the sync service on a fixed interval. An interval trigger
// that coincides with a manual run is skipped, not queued.
type Scheduler struct {
	syncService  portssvc.SyncRunnerSvc
	interval     time.Duration
	runOnStartup bool
	logger       *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a Scheduler. It does nothing until Start is called.
func New(syncService portssvc.SyncRunnerSvc, interval time.Duration, runOnStartup bool, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncService:  syncService,
		interval:     interval,
		runOnStartup: runOnStartup,
		logger:       logger.With(slog.String("component", "scheduler")),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start launches the scheduling loop in a goroutine.
func (s *Scheduler) Start() {
	go s.loop()
	s.logger.Info("Scheduler started",
		slog.Duration("interval", s.interval),
		slog.Bool("run_on_startup", s.runOnStartup),
	)
}

// Stop terminates the loop and waits for it to finish. A sync pass already
// underway completes; only future triggers are cancelled.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) loop() {
	defer close(s.done)

	if s.runOnStartup {
		s.runOnce()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) runOnce() {
	ctx := middleware.WithLogger(context.Background(), s.logger)

	run, err := s.syncService.RunSync(ctx)
	switch {
	case errors.Is(err, apperrors.ErrSyncInProgress):
		s.logger.Info("Skipping scheduled sync, a run is already active")
	case err != nil:
		s.logger.Error("Scheduled sync failed", slog.String("error", err.Error()))
	default:
		s.logger.Info("Scheduled sync completed",
			slog.Int("checked_docs", run.CheckedDocs),
			slog.Int("new_invoices", run.NewInvoices),
			slog.Int("updated_invoices", run.UpdatedInvoices),
		)
	}
}
