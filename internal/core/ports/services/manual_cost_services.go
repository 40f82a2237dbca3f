package services

import (
	"context"

	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// ManualCostReaderSvc defines read operations for manual cost entries.
type ManualCostReaderSvc interface {
	// GetManualCostByID retrieves a single manual cost entry.
	GetManualCostByID(ctx context.Context, id int64) (*models.ManualCost, error)

	// ListManualCosts returns manual cost entries, newest first.
	ListManualCosts(ctx context.Context, req dto.ListManualCostsRequest) ([]models.ManualCost, error)
}

// ManualCostWriterSvc defines write operations for manual cost entries.
type ManualCostWriterSvc interface {
	// CreateManualCost records a new manual cost entry.
	CreateManualCost(ctx context.Context, req dto.CreateManualCostRequest) (*models.ManualCost, error)

	// UpdateManualCost applies a partial update to an entry.
	UpdateManualCost(ctx context.Context, id int64, req dto.UpdateManualCostRequest) (*models.ManualCost, error)

	// ArchiveManualCost soft-deletes an entry; archived entries are excluded
	// from listings and totals but remain restorable.
	ArchiveManualCost(ctx context.Context, id int64) (*models.ManualCost, error)

	// RestoreManualCost reverses an archive.
	RestoreManualCost(ctx context.Context, id int64) (*models.ManualCost, error)
}

// ManualCostSvcFacade combines manual cost read and write operations.
type ManualCostSvcFacade interface {
	ManualCostReaderSvc
	ManualCostWriterSvc
}
