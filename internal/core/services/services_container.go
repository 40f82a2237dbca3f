package services

import (
	"github.com/poolcost/pool-cost-tracker/internal/core/ports"
	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	portssvc "github.com/poolcost/pool-cost-tracker/internal/core/ports/services"
	"github.com/poolcost/pool-cost-tracker/internal/platform/config"
)

// NewServiceContainer wires all application services with their
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, archive ports.ArchiveClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Sync = NewSyncService(archive, repos.InvoiceRepo, repos.SyncRunRepo, cfg.DefaultCurrency, cfg.ReviewThreshold)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, cfg.DefaultCurrency, cfg.ReviewThreshold)
	container.Review = NewReviewService(repos.InvoiceRepo)
	container.ManualCost = NewManualCostService(repos.ManualCostRepo, cfg.DefaultCurrency)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
