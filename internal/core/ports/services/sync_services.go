package services

import (
	"context"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// SyncRunnerSvc defines the operation that pulls documents from the archive
// and reconciles them into the invoice ledger.
type SyncRunnerSvc interface {
	// RunSync executes a full sync pass and returns the persisted run record.
	// Returns apperrors.ErrSyncInProgress when another run is active.
	RunSync(ctx context.Context) (*models.SyncRun, error)
}

// SyncRunReaderSvc defines read operations over recorded sync runs.
type SyncRunReaderSvc interface {
	// ListSyncRuns returns the most recent runs, newest first.
	ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error)

	// GetLastSyncRun returns the most recent run, or apperrors.ErrNotFound
	// when no sync has ever run.
	GetLastSyncRun(ctx context.Context) (*models.SyncRun, error)
}

// SyncSvcFacade combines sync execution and run history.
type SyncSvcFacade interface {
	SyncRunnerSvc
	SyncRunReaderSvc
}
