package services

import (
	"context"

	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// InvoiceReaderSvc defines read operations for the invoice ledger.
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a single invoice.
	GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error)

	// ListInvoices returns invoices matching the filter.
	ListInvoices(ctx context.Context, req dto.ListInvoicesRequest) ([]models.Invoice, error)
}

// InvoiceWriterSvc defines write operations for the invoice ledger.
type InvoiceWriterSvc interface {
	// UpdateInvoice applies manual corrections to an invoice. Fields that
	// differ from the extracted values become manual; reset flags revert a
	// field to the automatic extraction result.
	UpdateInvoice(ctx context.Context, id int64, req dto.UpdateInvoiceRequest) (*models.Invoice, error)
}

// InvoiceSvcFacade combines invoice read and write operations.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
