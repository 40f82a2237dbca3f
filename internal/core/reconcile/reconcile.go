// Package reconcile decides, for one candidate archive document and the
// invoice record currently held for its external id, what the next invoice
// state is. The decision is pure: persistence and error accounting stay with
// the sync orchestrator.
package reconcile

import (
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/core/extraction"
	"github.com/poolcost/pool-cost-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Action is the reconciliation outcome for one document.
type Action int

const (
	// ActionInsert creates a new invoice: the document id was never seen.
	ActionInsert Action = iota
	// ActionUpdate rewrites an existing invoice with refreshed extraction,
	// preserving manual overrides per field.
	ActionUpdate
	// ActionSkip leaves an existing invoice untouched: re-extraction
	// produced no effective change. This is what makes re-runs idempotent.
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionSkip:
		return "skip"
	}
	return "unknown"
}

// Reconcile computes the next invoice state for doc given the current record
// (nil if first-seen) and a fresh extraction over the document's OCR text.
//
// Override preservation: a field with source "manual" keeps its value and
// source untouched, while the matching *_auto column is always refreshed so
// the user can see what the heuristics would have produced. Confidence and
// the review flag are recomputed from the effective post-override state:
// manual fields count with signal 1.0.
func Reconcile(existing *models.Invoice, doc models.ArchiveDocument, result extraction.Result, threshold float64, now time.Time) (models.Invoice, Action) {
	next := models.Invoice{
		Source:           models.CostSourcePaperless,
		PaperlessDocID:   doc.ID,
		PaperlessCreated: doc.Created,
		Title:            optional(doc.Title),
		VendorAuto:       vendorValue(result),
		AmountAuto:       amountValue(result),
		Currency:         result.Currency,
		Correspondent:    optional(doc.Correspondent),
		DocumentType:     optional(doc.DocumentType),
		OCRText:          doc.Text,
		OCRSnippet:       optional(result.Snippet),
		ExtractedAt:      now,
		UpdatedAt:        now,
	}

	vendorSignal := result.Vendor.Signal
	amountSignal := result.Amount.Signal

	if existing == nil {
		next.Vendor = next.VendorAuto
		next.VendorSource = models.SourceAuto
		next.Amount = next.AmountAuto
		next.AmountSource = models.SourceAuto
		next.Confidence, next.NeedsReview = extraction.Score(vendorSignal, amountSignal, threshold)
		return next, ActionInsert
	}

	next.ID = existing.ID

	if existing.VendorSource == models.SourceManual {
		next.Vendor = existing.Vendor
		next.VendorSource = models.SourceManual
		vendorSignal = 1.0
	} else {
		next.Vendor = next.VendorAuto
		next.VendorSource = models.SourceAuto
	}

	if existing.AmountSource == models.SourceManual {
		next.Amount = existing.Amount
		next.AmountSource = models.SourceManual
		amountSignal = 1.0
	} else {
		next.Amount = next.AmountAuto
		next.AmountSource = models.SourceAuto
	}

	next.Confidence, next.NeedsReview = extraction.Score(vendorSignal, amountSignal, threshold)

	if unchanged(existing, &next) {
		return *existing, ActionSkip
	}
	return next, ActionUpdate
}

// unchanged compares every field a sync may touch; timestamps are excluded
// so an identical re-extraction does not count as an update.
func unchanged(a, b *models.Invoice) bool {
	return equalStrPtr(a.Title, b.Title) &&
		equalStrPtr(a.Vendor, b.Vendor) &&
		equalStrPtr(a.VendorAuto, b.VendorAuto) &&
		a.VendorSource == b.VendorSource &&
		equalDecPtr(a.Amount, b.Amount) &&
		equalDecPtr(a.AmountAuto, b.AmountAuto) &&
		a.AmountSource == b.AmountSource &&
		a.Currency == b.Currency &&
		a.Confidence == b.Confidence &&
		a.NeedsReview == b.NeedsReview &&
		equalStrPtr(a.Correspondent, b.Correspondent) &&
		equalStrPtr(a.DocumentType, b.DocumentType) &&
		a.OCRText == b.OCRText &&
		equalStrPtr(a.OCRSnippet, b.OCRSnippet) &&
		equalTimePtr(a.PaperlessCreated, b.PaperlessCreated)
}

func vendorValue(result extraction.Result) *string {
	if !result.Vendor.OK {
		return nil
	}
	v := result.Vendor.Value
	return &v
}

func amountValue(result extraction.Result) *decimal.Decimal {
	if !result.Amount.OK {
		return nil
	}
	v := result.Amount.Value
	return &v
}

func equalDecPtr(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
