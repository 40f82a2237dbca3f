package models

import "github.com/shopspring/decimal"

// VendorTotal is one row of the top-vendors aggregate.
type VendorTotal struct {
	Name   string
	Amount decimal.Decimal
}

// CategoryTotal is one row of the manual-cost per-category aggregate.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// Summary aggregates the combined ledger for the dashboard.
type Summary struct {
	TotalAmount      decimal.Decimal
	PaperlessTotal   decimal.Decimal
	ManualTotal      decimal.Decimal
	InvoiceCount     int
	ManualCostCount  int
	NeedsReviewCount int
	TopVendors       []VendorTotal
	CostsByCategory  []CategoryTotal
}

// CostRow is one line of the combined invoice/manual-cost export.
type CostRow struct {
	Date           *string
	Source         string
	Vendor         *string
	Amount         *decimal.Decimal
	Currency       *string
	Title          *string
	Category       *string
	Note           *string
	PaperlessDocID *int64
	Confidence     *float64
	NeedsReview    *bool
}
