package repositories

import (
	"context"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// Invoice sort keys accepted by ListInvoices.
const (
	InvoiceSortDateDesc   = "date_desc"
	InvoiceSortDateAsc    = "date_asc"
	InvoiceSortAmountDesc = "amount_desc"
	InvoiceSortAmountAsc  = "amount_asc"
	InvoiceSortVendorAsc  = "vendor_asc"
)

// InvoiceListFilter narrows and orders an invoice listing.
type InvoiceListFilter struct {
	NeedsReview *bool
	Search      string // matched against vendor and title, case-insensitive
	Sort        string
	Start, End  *time.Time // on the archive creation date
}

// InvoiceRepositoryFacade defines the persistence operations for Invoices.
type InvoiceRepositoryFacade interface {
	FindInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error)
	// FindInvoicesByDocIDs bulk-loads the records for a sync pass, keyed
	// by the external document id.
	FindInvoicesByDocIDs(ctx context.Context, docIDs []int64) (map[int64]models.Invoice, error)
	InsertInvoice(ctx context.Context, invoice *models.Invoice) error
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
	ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]models.Invoice, error)
}
