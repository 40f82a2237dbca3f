package dto

import (
	"github.com/shopspring/decimal"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// DateRangeRequest defines the query parameters shared by summary, review
// queue and export endpoints. from/to are only consulted for range=custom.
type DateRangeRequest struct {
	Range string `form:"range,default=month" binding:"omitempty,oneof=month last_month year all custom"`
	From  string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ReviewQueueRequest defines query parameters for the review queue.
type ReviewQueueRequest struct {
	DateRangeRequest
	Sort string `form:"sort,default=amount_desc" binding:"omitempty,oneof=amount_desc date_desc"`
}

// VendorTotalResponse is one row of the top-vendors aggregate.
type VendorTotalResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotalResponse is one row of the per-category aggregate.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// SummaryResponse is the combined-ledger dashboard aggregate.
type SummaryResponse struct {
	TotalAmount      decimal.Decimal         `json:"total_amount"`
	PaperlessTotal   decimal.Decimal         `json:"paperless_total"`
	ManualTotal      decimal.Decimal         `json:"manual_total"`
	InvoiceCount     int                     `json:"invoice_count"`
	ManualCostCount  int                     `json:"manual_cost_count"`
	NeedsReviewCount int                     `json:"needs_review_count"`
	TopVendors       []VendorTotalResponse   `json:"top_vendors"`
	CostsByCategory  []CategoryTotalResponse `json:"costs_by_category"`
}

// ToSummaryResponse converts a models.Summary to a DTO.
func ToSummaryResponse(s *models.Summary) SummaryResponse {
	res := SummaryResponse{
		TotalAmount:      s.TotalAmount,
		PaperlessTotal:   s.PaperlessTotal,
		ManualTotal:      s.ManualTotal,
		InvoiceCount:     s.InvoiceCount,
		ManualCostCount:  s.ManualCostCount,
		NeedsReviewCount: s.NeedsReviewCount,
		TopVendors:       make([]VendorTotalResponse, len(s.TopVendors)),
		CostsByCategory:  make([]CategoryTotalResponse, len(s.CostsByCategory)),
	}
	for i, v := range s.TopVendors {
		res.TopVendors[i] = VendorTotalResponse{Name: v.Name, Amount: v.Amount}
	}
	for i, c := range s.CostsByCategory {
		res.CostsByCategory[i] = CategoryTotalResponse{Category: c.Category, Amount: c.Amount}
	}
	return res
}
