package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

type PgxManualCostRepository struct {
	pool *pgxpool.Pool
}

// newPgxManualCostRepository creates a new repository for manual cost data.
func newPgxManualCostRepository(pool *pgxpool.Pool) portsrepo.ManualCostRepositoryFacade {
	return &PgxManualCostRepository{pool: pool}
}

var _ portsrepo.ManualCostRepositoryFacade = (*PgxManualCostRepository)(nil)

const manualCostColumns = `id, source, date, vendor, amount, currency,
	category, note, is_archived, archived_at, created_at, updated_at`

func scanManualCost(row pgx.Row) (models.ManualCost, error) {
	var mc models.ManualCost
	err := row.Scan(
		&mc.ID, &mc.Source, &mc.Date, &mc.Vendor, &mc.Amount, &mc.Currency,
		&mc.Category, &mc.Note, &mc.IsArchived, &mc.ArchivedAt, &mc.CreatedAt, &mc.UpdatedAt,
	)
	return mc, err
}

func (r *PgxManualCostRepository) FindManualCostByID(ctx context.Context, id int64) (*models.ManualCost, error) {
	query := fmt.Sprintf(`SELECT %s FROM manual_costs WHERE id = $1;`, manualCostColumns)

	mc, err := scanManualCost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: manual cost %d not found", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find manual cost %d: %w", id, err)
	}
	return &mc, nil
}

func (r *PgxManualCostRepository) InsertManualCost(ctx context.Context, cost *models.ManualCost) error {
	query := `
		INSERT INTO manual_costs (source, date, vendor, amount, currency,
			category, note, is_archived, archived_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id;
	`
	err := r.pool.QueryRow(ctx, query,
		cost.Source, cost.Date, cost.Vendor, cost.Amount, cost.Currency,
		cost.Category, cost.Note, cost.IsArchived, cost.ArchivedAt, cost.CreatedAt, cost.UpdatedAt,
	).Scan(&cost.ID)
	if err != nil {
		return fmt.Errorf("failed to insert manual cost: %w", err)
	}
	return nil
}

func (r *PgxManualCostRepository) UpdateManualCost(ctx context.Context, cost *models.ManualCost) error {
	query := `
		UPDATE manual_costs
		SET date = $2, vendor = $3, amount = $4, currency = $5,
			category = $6, note = $7, is_archived = $8, archived_at = $9,
			updated_at = $10
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		cost.ID, cost.Date, cost.Vendor, cost.Amount, cost.Currency,
		cost.Category, cost.Note, cost.IsArchived, cost.ArchivedAt,
		cost.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update manual cost %d: %w", cost.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: manual cost %d not found", apperrors.ErrNotFound, cost.ID)
	}
	return nil
}

func (r *PgxManualCostRepository) ListManualCosts(ctx context.Context, includeArchived bool) ([]models.ManualCost, error) {
	query := fmt.Sprintf(`SELECT %s FROM manual_costs`, manualCostColumns)
	if !includeArchived {
		query += ` WHERE is_archived = FALSE`
	}
	query += ` ORDER BY date DESC, id DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual costs: %w", err)
	}
	defer rows.Close()

	costs := make([]models.ManualCost, 0)
	for rows.Next() {
		mc, err := scanManualCost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manual cost row: %w", err)
		}
		costs = append(costs, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manual cost rows: %w", err)
	}
	return costs, nil
}
