package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// CreateManualCostRequest defines the data needed to record a manual cost.
// Date is ISO (YYYY-MM-DD) and defaults to today when omitted.
type CreateManualCostRequest struct {
	Date     string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Vendor   string          `json:"vendor" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"omitempty,uppercase,len=3"`
	Category *string         `json:"category"`
	Note     *string         `json:"note"`
}

// UpdateManualCostRequest defines the data allowed for editing a manual
// cost. Pointers differentiate omitted fields from zero values.
type UpdateManualCostRequest struct {
	Date     *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Vendor   *string          `json:"vendor"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency" binding:"omitempty,uppercase,len=3"`
	Category *string          `json:"category"`
	Note     *string          `json:"note"`
}

// ListManualCostsRequest defines query parameters for listing manual costs.
type ListManualCostsRequest struct {
	IncludeArchived bool `form:"include_archived"`
}

// ManualCostResponse defines the data returned for a manual cost.
type ManualCostResponse struct {
	ID         int64           `json:"id"`
	Source     string          `json:"source"`
	Date       string          `json:"date"`
	Vendor     string          `json:"vendor"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Category   *string         `json:"category"`
	Note       *string         `json:"note"`
	IsArchived bool            `json:"is_archived"`
	ArchivedAt *time.Time      `json:"archived_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToManualCostResponse converts a models.ManualCost to a DTO.
func ToManualCostResponse(cost *models.ManualCost) ManualCostResponse {
	return ManualCostResponse{
		ID:         cost.ID,
		Source:     cost.Source,
		Date:       cost.Date.Format("2006-01-02"),
		Vendor:     cost.Vendor,
		Amount:     cost.Amount,
		Currency:   cost.Currency,
		Category:   cost.Category,
		Note:       cost.Note,
		IsArchived: cost.IsArchived,
		ArchivedAt: cost.ArchivedAt,
		CreatedAt:  cost.CreatedAt,
		UpdatedAt:  cost.UpdatedAt,
	}
}

// ToListManualCostResponse converts a slice of models.ManualCost to DTOs.
func ToListManualCostResponse(costs []models.ManualCost) []ManualCostResponse {
	res := make([]ManualCostResponse, len(costs))
	for i := range costs {
		res[i] = ToManualCostResponse(&costs[i])
	}
	return res
}
