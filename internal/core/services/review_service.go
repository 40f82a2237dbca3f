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

// ReviewService implements the low-confidence review queue.
type ReviewService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewReviewService creates a new ReviewService.
func NewReviewService(invoiceRepo portsrepo.InvoiceRepositoryFacade) *ReviewService {
	return &ReviewService{invoiceRepo: invoiceRepo}
}

// ListReviewQueue returns flagged invoices within the requested range,
// biggest amounts first by default so the costliest uncertainty is resolved
// first.
func (s *ReviewService) ListReviewQueue(ctx context.Context, req dto.ReviewQueueRequest) ([]models.Invoice, error) {
	dateRange, err := dateranges.Resolve(req.Range, req.From, req.To, time.Now())
	if err != nil {
		return nil, err
	}

	needsReview := true
	sort := portsrepo.InvoiceSortAmountDesc
	if req.Sort == "date_desc" {
		sort = portsrepo.InvoiceSortDateDesc
	}

	return s.invoiceRepo.ListInvoices(ctx, portsrepo.InvoiceListFilter{
		NeedsReview: &needsReview,
		Sort:        sort,
		Start:       dateRange.Start,
		End:         dateRange.End,
	})
}

// MarkReviewed clears the review flag without touching any field values or
// their sources.
func (s *ReviewService) MarkReviewed(ctx context.Context, id int64) (*models.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.NeedsReview {
		return invoice, nil
	}

	invoice.NeedsReview = false
	invoice.UpdatedAt = time.Now().UTC()

	if err := s.invoiceRepo.UpdateInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to mark invoice reviewed", slog.Int64("invoice_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice marked reviewed", slog.Int64("invoice_id", id))
	return invoice, nil
}
