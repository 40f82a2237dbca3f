package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is one ledger record per ingested archive document. The archive
// document id (PaperlessDocID) is the natural key for upserts; records are
// never pruned, even if the document is later untagged.
//
// Vendor/Amount hold the effective values shown to the user. VendorAuto and
// AmountAuto always hold the latest raw extraction, so a manual override can
// be compared against what the heuristics would have produced.
type Invoice struct {
	ID               int64            `db:"id"`
	Source           string           `db:"source"` // always "paperless"
	PaperlessDocID   int64            `db:"paperless_doc_id"`
	PaperlessCreated *time.Time       `db:"paperless_created"`
	Title            *string          `db:"title"`
	Vendor           *string          `db:"vendor"`
	VendorAuto       *string          `db:"vendor_auto"`
	VendorSource     FieldSource      `db:"vendor_source"`
	Amount           *decimal.Decimal `db:"amount"`
	AmountAuto       *decimal.Decimal `db:"amount_auto"`
	AmountSource     FieldSource      `db:"amount_source"`
	Currency         string           `db:"currency"`
	Confidence       float64          `db:"confidence"`
	NeedsReview      bool             `db:"needs_review"`
	Correspondent    *string          `db:"correspondent"`
	DocumentType     *string          `db:"document_type"`
	OCRText          string           `db:"ocr_text"`
	OCRSnippet       *string          `db:"ocr_snippet"`
	ExtractedAt      time.Time        `db:"extracted_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}
