package repositories

import (
	"context"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// SyncRunRepositoryFacade defines the persistence operations for SyncRuns.
// Runs are append-only history; there is no update or delete.
type SyncRunRepositoryFacade interface {
	InsertSyncRun(ctx context.Context, run *models.SyncRun) error
	ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
	FindLastSyncRun(ctx context.Context) (*models.SyncRun, error)
}
