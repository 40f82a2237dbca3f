package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// ManualCostService implements hand-entered cost entries. Entries are never
// hard-deleted; archive and restore toggle their visibility in listings and
// totals.
type ManualCostService struct {
	manualCostRepo  portsrepo.ManualCostRepositoryFacade
	defaultCurrency string
}

// NewManualCostService creates a new ManualCostService.
func NewManualCostService(manualCostRepo portsrepo.ManualCostRepositoryFacade, defaultCurrency string) *ManualCostService {
	return &ManualCostService{
		manualCostRepo:  manualCostRepo,
		defaultCurrency: defaultCurrency,
	}
}

// GetManualCostByID retrieves a single manual cost entry.
func (s *ManualCostService) GetManualCostByID(ctx context.Context, id int64) (*models.ManualCost, error) {
	return s.manualCostRepo.FindManualCostByID(ctx, id)
}

// ListManualCosts returns entries newest first, excluding archived ones
// unless requested.
func (s *ManualCostService) ListManualCosts(ctx context.Context, req dto.ListManualCostsRequest) ([]models.ManualCost, error) {
	return s.manualCostRepo.ListManualCosts(ctx, req.IncludeArchived)
}

// CreateManualCost records a new entry. The date defaults to today and the
// currency to the deployment default.
func (s *ManualCostService) CreateManualCost(ctx context.Context, req dto.CreateManualCostRequest) (*models.ManualCost, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	vendor := strings.TrimSpace(req.Vendor)
	if vendor == "" {
		return nil, fmt.Errorf("%w: vendor is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	date := now.Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, req.Date)
		}
		date = parsed
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}

	cost := models.ManualCost{
		Source:    models.CostSourceManual,
		Date:      date,
		Vendor:    vendor,
		Amount:    req.Amount,
		Currency:  currency,
		Category:  normalizeOptional(req.Category),
		Note:      normalizeOptional(req.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.manualCostRepo.InsertManualCost(ctx, &cost); err != nil {
		logger.Error("Failed to insert manual cost", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Manual cost created", slog.Int64("manual_cost_id", cost.ID), slog.String("vendor", cost.Vendor))
	return &cost, nil
}

// UpdateManualCost applies a partial update to an entry.
func (s *ManualCostService) UpdateManualCost(ctx context.Context, id int64, req dto.UpdateManualCostRequest) (*models.ManualCost, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cost, err := s.manualCostRepo.FindManualCostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *req.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, *req.Date)
		}
		cost.Date = parsed
	}
	if req.Vendor != nil {
		vendor := strings.TrimSpace(*req.Vendor)
		if vendor == "" {
			return nil, fmt.Errorf("%w: vendor must not be empty", apperrors.ErrValidation)
		}
		cost.Vendor = vendor
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
		}
		cost.Amount = *req.Amount
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if currency == "" {
			currency = s.defaultCurrency
		}
		cost.Currency = currency
	}
	if req.Category != nil {
		cost.Category = normalizeOptional(req.Category)
	}
	if req.Note != nil {
		cost.Note = normalizeOptional(req.Note)
	}
	cost.UpdatedAt = time.Now().UTC()

	if err := s.manualCostRepo.UpdateManualCost(ctx, cost); err != nil {
		logger.Error("Failed to update manual cost", slog.Int64("manual_cost_id", id), slog.String("error", err.Error()))
		return nil, err
	}
	return cost, nil
}

// ArchiveManualCost soft-deletes an entry. Archiving an already archived
// entry is a no-op.
func (s *ManualCostService) ArchiveManualCost(ctx context.Context, id int64) (*models.ManualCost, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cost, err := s.manualCostRepo.FindManualCostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cost.IsArchived {
		return cost, nil
	}

	now := time.Now().UTC()
	cost.IsArchived = true
	cost.ArchivedAt = &now
	cost.UpdatedAt = now

	if err := s.manualCostRepo.UpdateManualCost(ctx, cost); err != nil {
		logger.Error("Failed to archive manual cost", slog.Int64("manual_cost_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Manual cost archived", slog.Int64("manual_cost_id", id))
	return cost, nil
}

// RestoreManualCost reverses an archive. Restoring an active entry is a
// no-op.
func (s *ManualCostService) RestoreManualCost(ctx context.Context, id int64) (*models.ManualCost, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cost, err := s.manualCostRepo.FindManualCostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cost.IsArchived {
		return cost, nil
	}

	cost.IsArchived = false
	cost.ArchivedAt = nil
	cost.UpdatedAt = time.Now().UTC()

	if err := s.manualCostRepo.UpdateManualCost(ctx, cost); err != nil {
		logger.Error("Failed to restore manual cost", slog.Int64("manual_cost_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Manual cost restored", slog.Int64("manual_cost_id", id))
	return cost, nil
}

// normalizeOptional trims an optional string; whitespace-only becomes nil.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
