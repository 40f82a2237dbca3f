package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{pool: pool}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `id, source, paperless_doc_id, paperless_created, title,
	vendor, vendor_auto, vendor_source, amount, amount_auto, amount_source,
	currency, confidence, needs_review, correspondent, document_type,
	ocr_text, ocr_snippet, extracted_at, updated_at`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID, &inv.Source, &inv.PaperlessDocID, &inv.PaperlessCreated, &inv.Title,
		&inv.Vendor, &inv.VendorAuto, &inv.VendorSource, &inv.Amount, &inv.AmountAuto, &inv.AmountSource,
		&inv.Currency, &inv.Confidence, &inv.NeedsReview, &inv.Correspondent, &inv.DocumentType,
		&inv.OCRText, &inv.OCRSnippet, &inv.ExtractedAt, &inv.UpdatedAt,
	)
	return inv, err
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE id = $1;`, invoiceColumns)

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %d not found", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find invoice %d: %w", id, err)
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) FindInvoicesByDocIDs(ctx context.Context, docIDs []int64) (map[int64]models.Invoice, error) {
	result := make(map[int64]models.Invoice, len(docIDs))
	if len(docIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE paperless_doc_id = ANY($1);`, invoiceColumns)

	rows, err := r.pool.Query(ctx, query, docIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices by document ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		result[inv.PaperlessDocID] = inv
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return result, nil
}

func (r *PgxInvoiceRepository) InsertInvoice(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (source, paperless_doc_id, paperless_created, title,
			vendor, vendor_auto, vendor_source, amount, amount_auto, amount_source,
			currency, confidence, needs_review, correspondent, document_type,
			ocr_text, ocr_snippet, extracted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id;
	`
	err := r.pool.QueryRow(ctx, query,
		invoice.Source, invoice.PaperlessDocID, invoice.PaperlessCreated, invoice.Title,
		invoice.Vendor, invoice.VendorAuto, invoice.VendorSource, invoice.Amount, invoice.AmountAuto, invoice.AmountSource,
		invoice.Currency, invoice.Confidence, invoice.NeedsReview, invoice.Correspondent, invoice.DocumentType,
		invoice.OCRText, invoice.OCRSnippet, invoice.ExtractedAt, invoice.UpdatedAt,
	).Scan(&invoice.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: invoice for document %d already exists", apperrors.ErrDuplicate, invoice.PaperlessDocID)
		}
		return fmt.Errorf("failed to insert invoice for document %d: %w", invoice.PaperlessDocID, err)
	}
	return nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	query := `
		UPDATE invoices
		SET paperless_created = $2, title = $3,
			vendor = $4, vendor_auto = $5, vendor_source = $6,
			amount = $7, amount_auto = $8, amount_source = $9,
			currency = $10, confidence = $11, needs_review = $12,
			correspondent = $13, document_type = $14,
			ocr_text = $15, ocr_snippet = $16,
			extracted_at = $17, updated_at = $18
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		invoice.ID, invoice.PaperlessCreated, invoice.Title,
		invoice.Vendor, invoice.VendorAuto, invoice.VendorSource,
		invoice.Amount, invoice.AmountAuto, invoice.AmountSource,
		invoice.Currency, invoice.Confidence, invoice.NeedsReview,
		invoice.Correspondent, invoice.DocumentType,
		invoice.OCRText, invoice.OCRSnippet,
		invoice.ExtractedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %d: %w", invoice.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %d not found", apperrors.ErrNotFound, invoice.ID)
	}
	return nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceListFilter) ([]models.Invoice, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.NeedsReview != nil {
		conditions = append(conditions, "needs_review = "+arg(*filter.NeedsReview))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		placeholder := arg("%" + search + "%")
		conditions = append(conditions, fmt.Sprintf("(vendor ILIKE %s OR title ILIKE %s)", placeholder, placeholder))
	}
	if filter.Start != nil {
		conditions = append(conditions, "paperless_created >= "+arg(*filter.Start))
	}
	if filter.End != nil {
		conditions = append(conditions, "paperless_created < "+arg(filter.End.AddDate(0, 0, 1)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "paperless_created DESC NULLS LAST, id DESC"
	switch filter.Sort {
	case portsrepo.InvoiceSortDateAsc:
		orderBy = "paperless_created ASC NULLS FIRST, id ASC"
	case portsrepo.InvoiceSortAmountDesc:
		orderBy = "amount DESC NULLS LAST, id DESC"
	case portsrepo.InvoiceSortAmountAsc:
		orderBy = "amount ASC NULLS LAST, id ASC"
	case portsrepo.InvoiceSortVendorAsc:
		orderBy = "vendor ASC NULLS LAST, id ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices %s ORDER BY %s;`, invoiceColumns, where, orderBy)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]models.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}
