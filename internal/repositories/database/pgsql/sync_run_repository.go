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

type PgxSyncRunRepository struct {
	pool *pgxpool.Pool
}

// newPgxSyncRunRepository creates a new repository for sync run history.
func newPgxSyncRunRepository(pool *pgxpool.Pool) portsrepo.SyncRunRepositoryFacade {
	return &PgxSyncRunRepository{pool: pool}
}

var _ portsrepo.SyncRunRepositoryFacade = (*PgxSyncRunRepository)(nil)

const syncRunColumns = `id, status, started_at, finished_at, duration_ms,
	checked_docs, new_invoices, updated_invoices, skipped_invoices,
	error_count, first_error_text`

func scanSyncRun(row pgx.Row) (models.SyncRun, error) {
	var run models.SyncRun
	err := row.Scan(
		&run.ID, &run.Status, &run.StartedAt, &run.FinishedAt, &run.DurationMS,
		&run.CheckedDocs, &run.NewInvoices, &run.UpdatedInvoices, &run.SkippedInvoices,
		&run.ErrorCount, &run.FirstErrorText,
	)
	return run, err
}

func (r *PgxSyncRunRepository) InsertSyncRun(ctx context.Context, run *models.SyncRun) error {
	query := `
		INSERT INTO sync_runs (status, started_at, finished_at, duration_ms,
			checked_docs, new_invoices, updated_invoices, skipped_invoices,
			error_count, first_error_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	err := r.pool.QueryRow(ctx, query,
		run.Status, run.StartedAt, run.FinishedAt, run.DurationMS,
		run.CheckedDocs, run.NewInvoices, run.UpdatedInvoices, run.SkippedInvoices,
		run.ErrorCount, run.FirstErrorText,
	).Scan(&run.ID)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}
	return nil
}

func (r *PgxSyncRunRepository) ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	query := fmt.Sprintf(`SELECT %s FROM sync_runs ORDER BY started_at DESC, id DESC LIMIT $1;`, syncRunColumns)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	defer rows.Close()

	runs := make([]models.SyncRun, 0)
	for rows.Next() {
		run, err := scanSyncRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync run rows: %w", err)
	}
	return runs, nil
}

func (r *PgxSyncRunRepository) FindLastSyncRun(ctx context.Context) (*models.SyncRun, error) {
	query := fmt.Sprintf(`SELECT %s FROM sync_runs ORDER BY started_at DESC, id DESC LIMIT 1;`, syncRunColumns)

	run, err := scanSyncRun(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no sync has run yet", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find last sync run: %w", err)
	}
	return &run, nil
}
