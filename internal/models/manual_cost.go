package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManualCost is a hand-entered cost line, independent of the archive.
// Manual costs are soft-deleted (archived) and can be restored; they are
// never hard-deleted.
type ManualCost struct {
	ID         int64           `db:"id"`
	Source     string          `db:"source"` // always "manual"
	Date       time.Time       `db:"date"`
	Vendor     string          `db:"vendor"`
	Amount     decimal.Decimal `db:"amount"`
	Currency   string          `db:"currency"`
	Category   *string         `db:"category"`
	Note       *string         `db:"note"`
	IsArchived bool            `db:"is_archived"`
	ArchivedAt *time.Time      `db:"archived_at"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
