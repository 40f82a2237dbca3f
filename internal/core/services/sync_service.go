package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	"github.com/poolcost/pool-cost-tracker/internal/core/extraction"
	"github.com/poolcost/pool-cost-tracker/internal/core/ports"
	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/core/reconcile"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// SyncService runs the fetch-extract-reconcile pass against the archive and
// records each pass as a SyncRun. At most one pass runs at a time; a second
// trigger while one is active fails fast with ErrSyncInProgress.
type SyncService struct {
	archive         ports.ArchiveClient
	invoiceRepo     portsrepo.InvoiceRepositoryFacade
	syncRunRepo     portsrepo.SyncRunRepositoryFacade
	defaultCurrency string
	reviewThreshold float64

	mu sync.Mutex
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	archive ports.ArchiveClient,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	syncRunRepo portsrepo.SyncRunRepositoryFacade,
	defaultCurrency string,
	reviewThreshold float64,
) *SyncService {
	return &SyncService{
		archive:         archive,
		invoiceRepo:     invoiceRepo,
		syncRunRepo:     syncRunRepo,
		defaultCurrency: defaultCurrency,
		reviewThreshold: reviewThreshold,
	}
}

// RunSync executes one full pass. On tag resolution or transport failure the
// run is still persisted with status failed, and both the run and the error
// are returned so callers can report what happened. Per-document persistence
// errors do not fail the run: they are counted, the first message is kept,
// and the pass continues with the remaining documents.
func (s *SyncService) RunSync(ctx context.Context) (*models.SyncRun, error) {
	if !s.mu.TryLock() {
		return nil, fmt.Errorf("%w: a sync run is already active", apperrors.ErrSyncInProgress)
	}
	defer s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)
	started := time.Now().UTC()
	logger.Info("Sync run started")

	tagID, err := s.archive.ResolveTag(ctx)
	if err != nil {
		return s.finishFailed(ctx, started, 0, err)
	}

	docs, err := s.archive.ListProjectDocuments(ctx, tagID)
	if err != nil {
		return s.finishFailed(ctx, started, 0, err)
	}

	docIDs := make([]int64, len(docs))
	for i, doc := range docs {
		docIDs[i] = doc.ID
	}
	existing, err := s.invoiceRepo.FindInvoicesByDocIDs(ctx, docIDs)
	if err != nil {
		return s.finishFailed(ctx, started, len(docs), err)
	}

	run := models.SyncRun{
		Status:      models.SyncRunCompleted,
		StartedAt:   started,
		CheckedDocs: len(docs),
	}
	for _, doc := range docs {
		var current *models.Invoice
		if inv, ok := existing[doc.ID]; ok {
			current = &inv
		}

		result := extraction.Extract(doc.Text, doc.Correspondent, s.defaultCurrency, s.reviewThreshold)
		next, action := reconcile.Reconcile(current, doc, result, s.reviewThreshold, time.Now().UTC())

		var persistErr error
		switch action {
		case reconcile.ActionInsert:
			if persistErr = s.invoiceRepo.InsertInvoice(ctx, &next); persistErr == nil {
				run.NewInvoices++
			}
		case reconcile.ActionUpdate:
			if persistErr = s.invoiceRepo.UpdateInvoice(ctx, &next); persistErr == nil {
				run.UpdatedInvoices++
			}
		case reconcile.ActionSkip:
			run.SkippedInvoices++
		}

		if persistErr != nil {
			run.ErrorCount++
			if run.FirstErrorText == nil {
				msg := fmt.Sprintf("document %d: %v", doc.ID, persistErr)
				run.FirstErrorText = &msg
			}
			logger.Error("Failed to persist invoice during sync",
				slog.Int64("paperless_doc_id", doc.ID),
				slog.String("action", action.String()),
				slog.String("error", persistErr.Error()),
			)
		}
	}

	run.FinishedAt = time.Now().UTC()
	run.DurationMS = run.FinishedAt.Sub(run.StartedAt).Milliseconds()

	if err := s.syncRunRepo.InsertSyncRun(ctx, &run); err != nil {
		logger.Error("Failed to record sync run", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Sync run completed",
		slog.Int("checked_docs", run.CheckedDocs),
		slog.Int("new_invoices", run.NewInvoices),
		slog.Int("updated_invoices", run.UpdatedInvoices),
		slog.Int("skipped_invoices", run.SkippedInvoices),
		slog.Int("error_count", run.ErrorCount),
	)
	return &run, nil
}

// finishFailed records a run that could not complete its pass. The original
// error is returned alongside the persisted run.
func (s *SyncService) finishFailed(ctx context.Context, started time.Time, checked int, cause error) (*models.SyncRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	msg := cause.Error()

	run := models.SyncRun{
		Status:         models.SyncRunFailed,
		StartedAt:      started,
		FinishedAt:     time.Now().UTC(),
		CheckedDocs:    checked,
		ErrorCount:     1,
		FirstErrorText: &msg,
	}
	run.DurationMS = run.FinishedAt.Sub(run.StartedAt).Milliseconds()

	if insertErr := s.syncRunRepo.InsertSyncRun(ctx, &run); insertErr != nil {
		logger.Error("Failed to record failed sync run", slog.String("error", insertErr.Error()))
		return nil, cause
	}

	logger.Error("Sync run failed", slog.String("error", msg))
	return &run, cause
}

// ListSyncRuns returns the most recent runs, newest first.
func (s *SyncService) ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.syncRunRepo.ListSyncRuns(ctx, limit)
}

// GetLastSyncRun returns the most recent run.
func (s *SyncService) GetLastSyncRun(ctx context.Context) (*models.SyncRun, error) {
	return s.syncRunRepo.FindLastSyncRun(ctx)
}
