package services

import (
	"context"

	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// ReportingSvcFacade exposes aggregated cost reporting over the combined
// ledger of extracted invoices and manual cost entries.
type ReportingSvcFacade interface {
	// GetSummary computes totals, counts, top vendors and category totals
	// for the requested date range.
	GetSummary(ctx context.Context, req dto.DateRangeRequest) (*models.Summary, error)

	// ExportRows returns every cost row (invoices and manual entries) in the
	// range for CSV export, oldest first.
	ExportRows(ctx context.Context, req dto.DateRangeRequest) ([]models.CostRow, error)
}
