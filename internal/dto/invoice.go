package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// ListInvoicesRequest defines query parameters for listing invoices.
type ListInvoicesRequest struct {
	NeedsReview *bool  `form:"needs_review"`
	Search      string `form:"search"`
	Sort        string `form:"sort,default=date_desc" binding:"omitempty,oneof=date_desc date_asc amount_desc amount_asc vendor_asc"`
}

// UpdateInvoiceRequest defines the data allowed for editing an invoice.
// Pointers differentiate omitted fields from zero values. Setting vendor or
// amount to a value different from the current one marks that field as a
// manual override; reset_* flips a field back to auto and re-runs its
// heuristic against the stored OCR text.
type UpdateInvoiceRequest struct {
	Vendor      *string          `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	NeedsReview *bool            `json:"needs_review"`
	ResetVendor bool             `json:"reset_vendor"`
	ResetAmount bool             `json:"reset_amount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	ID               int64            `json:"id"`
	Source           string           `json:"source"`
	PaperlessDocID   int64            `json:"paperless_doc_id"`
	PaperlessCreated *time.Time       `json:"paperless_created"`
	Title            *string          `json:"title"`
	Vendor           *string          `json:"vendor"`
	VendorAuto       *string          `json:"vendor_auto"`
	VendorSource     string           `json:"vendor_source"`
	Amount           *decimal.Decimal `json:"amount"`
	AmountAuto       *decimal.Decimal `json:"amount_auto"`
	AmountSource     string           `json:"amount_source"`
	Currency         string           `json:"currency"`
	Confidence       float64          `json:"confidence"`
	NeedsReview      bool             `json:"needs_review"`
	Correspondent    *string          `json:"correspondent"`
	DocumentType     *string          `json:"document_type"`
	OCRSnippet       *string          `json:"ocr_snippet"`
	ExtractedAt      time.Time        `json:"extracted_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToInvoiceResponse converts a models.Invoice to an InvoiceResponse DTO.
// The full OCR text is deliberately not exposed on list endpoints; the
// snippet is enough for the review UI.
func ToInvoiceResponse(inv *models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               inv.ID,
		Source:           inv.Source,
		PaperlessDocID:   inv.PaperlessDocID,
		PaperlessCreated: inv.PaperlessCreated,
		Title:            inv.Title,
		Vendor:           inv.Vendor,
		VendorAuto:       inv.VendorAuto,
		VendorSource:     string(inv.VendorSource),
		Amount:           inv.Amount,
		AmountAuto:       inv.AmountAuto,
		AmountSource:     string(inv.AmountSource),
		Currency:         inv.Currency,
		Confidence:       inv.Confidence,
		NeedsReview:      inv.NeedsReview,
		Correspondent:    inv.Correspondent,
		DocumentType:     inv.DocumentType,
		OCRSnippet:       inv.OCRSnippet,
		ExtractedAt:      inv.ExtractedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

// ToListInvoiceResponse converts a slice of models.Invoice to DTOs.
func ToListInvoiceResponse(invoices []models.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}
