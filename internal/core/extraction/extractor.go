// Package extraction turns noisy OCR text into structured invoice facts: a
// vendor guess and an amount guess, each with a signal strength, combined
// into a confidence score and a review flag. All functions are pure; a
// document with no recognizable facts yields empty guesses, never an error.
package extraction

import "github.com/shopspring/decimal"

// correspondentSignal is the trust put into the archive's curated
// correspondent field when the text itself names no vendor.
const correspondentSignal = 0.6

// Result is the full extraction outcome for one document.
type Result struct {
	Vendor      Guess[string]
	Amount      Guess[decimal.Decimal]
	Currency    string
	Confidence  float64
	NeedsReview bool
	// Snippet is the text line the amount was taken from, kept for the UI.
	Snippet string
}

// Extract runs both heuristics over one document's OCR text. The archive's
// correspondent serves as a moderate-signal vendor fallback; the detected
// currency falls back to the deployment default.
func Extract(text, correspondent, defaultCurrency string, threshold float64) Result {
	vendor := ExtractVendor(text)
	if !vendor.OK && correspondent != "" {
		vendor = guessOf(correspondent, correspondentSignal)
	}

	amount, currency, snippet := ExtractAmount(text)
	if currency == "" {
		currency = defaultCurrency
	}

	confidence, needsReview := Score(vendor.Signal, amount.Signal, threshold)

	return Result{
		Vendor:      vendor,
		Amount:      amount,
		Currency:    currency,
		Confidence:  confidence,
		NeedsReview: needsReview,
		Snippet:     snippet,
	}
}
