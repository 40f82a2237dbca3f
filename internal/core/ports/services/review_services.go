package services

import (
	"context"

	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// ReviewQueueSvcFacade exposes the low-confidence review queue.
type ReviewQueueSvcFacade interface {
	// ListReviewQueue returns invoices flagged for review within the range.
	ListReviewQueue(ctx context.Context, req dto.ReviewQueueRequest) ([]models.Invoice, error)

	// MarkReviewed clears the review flag on an invoice without changing
	// any field values.
	MarkReviewed(ctx context.Context, id int64) (*models.Invoice, error)
}
