package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	"github.com/poolcost/pool-cost-tracker/internal/core/extraction"
	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// InvoiceService implements read and edit operations over the invoice
// ledger. Edits distinguish manual overrides from extracted values per
// field, and re-derive the confidence score after every change.
type InvoiceService struct {
	invoiceRepo     portsrepo.InvoiceRepositoryFacade
	defaultCurrency string
	reviewThreshold float64
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, defaultCurrency string, reviewThreshold float64) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		defaultCurrency: defaultCurrency,
		reviewThreshold: reviewThreshold,
	}
}

// GetInvoiceByID retrieves a single invoice.
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find invoice", slog.Int64("invoice_id", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return invoice, nil
}

// ListInvoices returns invoices matching the request filter.
func (s *InvoiceService) ListInvoices(ctx context.Context, req dto.ListInvoicesRequest) ([]models.Invoice, error) {
	filter := portsrepo.InvoiceListFilter{
		NeedsReview: req.NeedsReview,
		Search:      strings.TrimSpace(req.Search),
		Sort:        req.Sort,
	}
	return s.invoiceRepo.ListInvoices(ctx, filter)
}

// UpdateInvoice applies manual corrections to an invoice. A provided vendor
// or amount that differs from the latest automatic extraction becomes a
// manual override and is scored as fully trusted; a value equal to the
// automatic one keeps the field automatic. Reset flags revert a field to
// the automatic extraction result from the stored OCR text. The review flag
// is recomputed from the resulting per-field trust unless explicitly set.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id int64, req dto.UpdateInvoiceRequest) (*models.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ResetVendor && req.Vendor != nil {
		return nil, fmt.Errorf("%w: cannot set and reset vendor in the same request", apperrors.ErrValidation)
	}
	if req.ResetAmount && req.Amount != nil {
		return nil, fmt.Errorf("%w: cannot set and reset amount in the same request", apperrors.ErrValidation)
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The stored text always yields the current automatic view of the
	// document, including per-field signal strengths.
	auto := extraction.Extract(invoice.OCRText, derefOrEmpty(invoice.Correspondent), s.defaultCurrency, s.reviewThreshold)

	if req.ResetVendor {
		invoice.Vendor = invoice.VendorAuto
		invoice.VendorSource = models.SourceAuto
	} else if req.Vendor != nil {
		vendor := strings.TrimSpace(*req.Vendor)
		if vendor == "" {
			return nil, fmt.Errorf("%w: vendor must not be empty", apperrors.ErrValidation)
		}
		if invoice.VendorAuto != nil && vendor == *invoice.VendorAuto {
			invoice.Vendor = invoice.VendorAuto
			invoice.VendorSource = models.SourceAuto
		} else {
			invoice.Vendor = &vendor
			invoice.VendorSource = models.SourceManual
		}
	}

	if req.ResetAmount {
		invoice.Amount = invoice.AmountAuto
		invoice.AmountSource = models.SourceAuto
	} else if req.Amount != nil {
		if invoice.AmountAuto != nil && req.Amount.Equal(*invoice.AmountAuto) {
			invoice.Amount = invoice.AmountAuto
			invoice.AmountSource = models.SourceAuto
		} else {
			amount := *req.Amount
			invoice.Amount = &amount
			invoice.AmountSource = models.SourceManual
		}
	}

	vendorSignal := auto.Vendor.Signal
	if invoice.VendorSource == models.SourceManual {
		vendorSignal = 1.0
	}
	amountSignal := auto.Amount.Signal
	if invoice.AmountSource == models.SourceManual {
		amountSignal = 1.0
	}
	invoice.Confidence, invoice.NeedsReview = extraction.Score(vendorSignal, amountSignal, s.reviewThreshold)

	if req.NeedsReview != nil {
		invoice.NeedsReview = *req.NeedsReview
	}
	invoice.UpdatedAt = time.Now().UTC()

	if err := s.invoiceRepo.UpdateInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to update invoice", slog.Int64("invoice_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice updated",
		slog.Int64("invoice_id", id),
		slog.String("vendor_source", string(invoice.VendorSource)),
		slog.String("amount_source", string(invoice.AmountSource)),
		slog.Bool("needs_review", invoice.NeedsReview),
	)
	return invoice, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
