package extraction

// Signal weights for the combined confidence. The amount carries slightly
// more weight than the vendor: a wrong total hurts the ledger more than a
// misspelled sender. Either field missing (signal 0) keeps the combined
// confidence below the default threshold, so such documents always land in
// the review queue.
const (
	vendorWeight = 0.45
	amountWeight = 0.55

	// DefaultReviewThreshold flags any document whose extraction misses
	// either field; both weights are below it.
	DefaultReviewThreshold = 0.60
)

// Score combines the vendor and amount signals into a single confidence and
// derives the review flag. Callers score manual-source fields with signal
// 1.0: a human has already vetted the value, so a single manual fix can
// clear the review flag without waiting for the other field.
func Score(vendorSignal, amountSignal, threshold float64) (float64, bool) {
	confidence := vendorWeight*clamp01(vendorSignal) + amountWeight*clamp01(amountSignal)
	confidence = clamp01(confidence)
	return confidence, confidence < threshold
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
