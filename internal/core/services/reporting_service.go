package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
	"github.com/poolcost/pool-cost-tracker/internal/models"
	"github.com/poolcost/pool-cost-tracker/internal/utils/dateranges"
)

// topVendorLimit bounds the top-vendors list on the dashboard summary.
const topVendorLimit = 10

// ReportingService implements aggregated reporting over the combined
// ledger of extracted invoices and manual cost entries.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) *ReportingService {
	return &ReportingService{reportingRepo: reportingRepo}
}

// GetSummary computes totals, record counts, top vendors and category
// totals for the requested range. Counts are ledger-wide, not range-bound,
// so the dashboard always shows the full review backlog.
func (s *ReportingService) GetSummary(ctx context.Context, req dto.DateRangeRequest) (*models.Summary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	dateRange, err := dateranges.Resolve(req.Range, req.From, req.To, time.Now())
	if err != nil {
		return nil, err
	}

	paperlessTotal, manualTotal, err := s.reportingRepo.GetCostTotals(ctx, dateRange.Start, dateRange.End)
	if err != nil {
		logger.Error("Failed to compute cost totals", slog.String("error", err.Error()))
		return nil, err
	}

	invoices, manualCosts, needsReview, err := s.reportingRepo.GetLedgerCounts(ctx)
	if err != nil {
		logger.Error("Failed to count ledger records", slog.String("error", err.Error()))
		return nil, err
	}

	topVendors, err := s.reportingRepo.GetTopVendors(ctx, dateRange.Start, dateRange.End, topVendorLimit)
	if err != nil {
		logger.Error("Failed to compute top vendors", slog.String("error", err.Error()))
		return nil, err
	}

	categories, err := s.reportingRepo.GetCategoryTotals(ctx, dateRange.Start, dateRange.End)
	if err != nil {
		logger.Error("Failed to compute category totals", slog.String("error", err.Error()))
		return nil, err
	}

	return &models.Summary{
		TotalAmount:      paperlessTotal.Add(manualTotal),
		PaperlessTotal:   paperlessTotal,
		ManualTotal:      manualTotal,
		InvoiceCount:     invoices,
		ManualCostCount:  manualCosts,
		NeedsReviewCount: needsReview,
		TopVendors:       topVendors,
		CostsByCategory:  categories,
	}, nil
}

// ExportRows returns every cost row in the range for CSV export.
func (s *ReportingService) ExportRows(ctx context.Context, req dto.DateRangeRequest) ([]models.CostRow, error) {
	dateRange, err := dateranges.Resolve(req.Range, req.From, req.To, time.Now())
	if err != nil {
		return nil, err
	}
	return s.reportingRepo.GetAllCostRows(ctx, dateRange.Start, dateRange.End)
}
