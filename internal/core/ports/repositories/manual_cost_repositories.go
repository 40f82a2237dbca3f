package repositories

import (
	"context"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// ManualCostRepositoryFacade defines the persistence operations for
// ManualCosts. There is no delete: manual costs are archived and restored.
type ManualCostRepositoryFacade interface {
	FindManualCostByID(ctx context.Context, id int64) (*models.ManualCost, error)
	InsertManualCost(ctx context.Context, cost *models.ManualCost) error
	UpdateManualCost(ctx context.Context, cost *models.ManualCost) error
	ListManualCosts(ctx context.Context, includeArchived bool) ([]models.ManualCost, error)
}
