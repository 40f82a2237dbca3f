package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		ManualCostRepo: newPgxManualCostRepository(dbPool),
		SyncRunRepo:    newPgxSyncRunRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
