package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// ReportingRepository implements aggregate queries over the combined ledger
// of invoices and manual costs.
type ReportingRepository struct {
	pool *pgxpool.Pool
}

// newReportingRepository creates a new repository for reporting aggregates.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// rangeClause builds a date-bound predicate on the given column. The end
// bound is inclusive of the whole day.
func rangeClause(column string, start, end *time.Time, args *[]any) string {
	clause := ""
	if start != nil {
		*args = append(*args, *start)
		clause += fmt.Sprintf(" AND %s >= $%d", column, len(*args))
	}
	if end != nil {
		*args = append(*args, end.AddDate(0, 0, 1))
		clause += fmt.Sprintf(" AND %s < $%d", column, len(*args))
	}
	return clause
}

func (r *ReportingRepository) GetCostTotals(ctx context.Context, start, end *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var invoiceArgs []any
	invoiceQuery := `
		SELECT COALESCE(SUM(amount), 0)
		FROM invoices
		WHERE amount IS NOT NULL` + rangeClause("paperless_created", start, end, &invoiceArgs) + `;`

	var paperlessTotal decimal.Decimal
	if err := r.pool.QueryRow(ctx, invoiceQuery, invoiceArgs...).Scan(&paperlessTotal); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum invoice amounts: %w", err)
	}

	var manualArgs []any
	manualQuery := `
		SELECT COALESCE(SUM(amount), 0)
		FROM manual_costs
		WHERE is_archived = FALSE` + rangeClause("date", start, end, &manualArgs) + `;`

	var manualTotal decimal.Decimal
	if err := r.pool.QueryRow(ctx, manualQuery, manualArgs...).Scan(&manualTotal); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum manual cost amounts: %w", err)
	}

	return paperlessTotal, manualTotal, nil
}

func (r *ReportingRepository) GetLedgerCounts(ctx context.Context) (int, int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM manual_costs WHERE is_archived = FALSE),
			(SELECT COUNT(*) FROM invoices WHERE needs_review = TRUE);
	`
	var invoices, manualCosts, needsReview int
	if err := r.pool.QueryRow(ctx, query).Scan(&invoices, &manualCosts, &needsReview); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count ledger records: %w", err)
	}
	return invoices, manualCosts, needsReview, nil
}

func (r *ReportingRepository) GetTopVendors(ctx context.Context, start, end *time.Time, limit int) ([]models.VendorTotal, error) {
	var args []any
	clause := rangeClause("paperless_created", start, end, &args)
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT vendor, SUM(amount) AS total
		FROM invoices
		WHERE vendor IS NOT NULL AND amount IS NOT NULL%s
		GROUP BY vendor
		ORDER BY total DESC
		LIMIT $%d;
	`, clause, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top vendors: %w", err)
	}
	defer rows.Close()

	totals := make([]models.VendorTotal, 0)
	for rows.Next() {
		var vt models.VendorTotal
		if err := rows.Scan(&vt.Name, &vt.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan vendor total row: %w", err)
		}
		totals = append(totals, vt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendor total rows: %w", err)
	}
	return totals, nil
}

func (r *ReportingRepository) GetCategoryTotals(ctx context.Context, start, end *time.Time) ([]models.CategoryTotal, error) {
	var args []any
	clause := rangeClause("date", start, end, &args)

	query := `
		SELECT COALESCE(category, 'uncategorized'), SUM(amount) AS total
		FROM manual_costs
		WHERE is_archived = FALSE` + clause + `
		GROUP BY COALESCE(category, 'uncategorized')
		ORDER BY total DESC;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	totals := make([]models.CategoryTotal, 0)
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}
	return totals, nil
}

func (r *ReportingRepository) GetAllCostRows(ctx context.Context, start, end *time.Time) ([]models.CostRow, error) {
	var args []any
	invoiceClause := rangeClause("paperless_created", start, end, &args)
	manualClause := rangeClause("date", start, end, &args)

	query := `
		SELECT to_char(paperless_created, 'YYYY-MM-DD') AS cost_date, source, vendor, amount,
			currency, title, NULL AS category, NULL AS note,
			paperless_doc_id, confidence, needs_review
		FROM invoices
		WHERE TRUE` + invoiceClause + `
		UNION ALL
		SELECT to_char(date, 'YYYY-MM-DD') AS cost_date, source, vendor, amount,
			currency, NULL AS title, category, note,
			NULL AS paperless_doc_id, NULL AS confidence, NULL AS needs_review
		FROM manual_costs
		WHERE is_archived = FALSE` + manualClause + `
		ORDER BY cost_date DESC NULLS LAST;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost rows: %w", err)
	}
	defer rows.Close()

	costRows := make([]models.CostRow, 0)
	for rows.Next() {
		var cr models.CostRow
		err := rows.Scan(
			&cr.Date, &cr.Source, &cr.Vendor, &cr.Amount,
			&cr.Currency, &cr.Title, &cr.Category, &cr.Note,
			&cr.PaperlessDocID, &cr.Confidence, &cr.NeedsReview,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost row: %w", err)
		}
		costRows = append(costRows, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cost rows: %w", err)
	}
	return costRows, nil
}
