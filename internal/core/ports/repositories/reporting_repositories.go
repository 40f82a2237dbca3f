package repositories

import (
	"context"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only aggregate queries over the combined
// ledger (invoices plus manual costs).
type ReportingRepository interface {
	// GetCostTotals returns the invoice and manual-cost totals within the
	// date range (nil bounds mean unbounded). Archived manual costs are
	// excluded.
	GetCostTotals(ctx context.Context, start, end *time.Time) (paperless, manual decimal.Decimal, err error)

	// GetLedgerCounts returns invoice, active manual-cost and
	// needs-review counts.
	GetLedgerCounts(ctx context.Context) (invoices, manualCosts, needsReview int, err error)

	// GetTopVendors returns the highest-spend vendors among invoices.
	GetTopVendors(ctx context.Context, start, end *time.Time, limit int) ([]models.VendorTotal, error)

	// GetCategoryTotals returns manual-cost spend grouped by category.
	GetCategoryTotals(ctx context.Context, start, end *time.Time) ([]models.CategoryTotal, error)

	// GetAllCostRows returns the UNION of invoices and active manual
	// costs for export, ordered by date descending.
	GetAllCostRows(ctx context.Context, start, end *time.Time) ([]models.CostRow, error)
}
