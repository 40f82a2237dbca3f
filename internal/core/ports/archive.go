package ports

import (
	"context"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// ArchiveClient is the contract with the external document archive. The
// engine only needs tag resolution and a windowed, exhaustively paginated
// document listing; everything else about the archive is out of scope.
type ArchiveClient interface {
	// ResolveTag resolves the configured project tag by exact name match.
	// A miss is a misconfiguration (apperrors.ErrConfiguration), not a
	// partial-failure condition.
	ResolveTag(ctx context.Context) (int64, error)

	// ListProjectDocuments yields all documents carrying the tag that were
	// created within the lookback window, newest first. Restart means
	// calling again with the same window, not resuming mid-page.
	ListProjectDocuments(ctx context.Context, tagID int64) ([]models.ArchiveDocument, error)

	// Probe checks archive reachability and reports the round-trip time.
	Probe(ctx context.Context) (time.Duration, error)
}
