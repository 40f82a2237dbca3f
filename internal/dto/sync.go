package dto

import (
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// SyncErrorAggregate is the bounded error record of one run: a count and
// the first captured message only.
type SyncErrorAggregate struct {
	Count      int     `json:"count"`
	FirstError *string `json:"first_error"`
}

// SyncRunResponse defines the data returned for one reconciliation pass.
// The summary returned by a manual trigger and the persisted history rows
// share this shape.
type SyncRunResponse struct {
	ID              int64              `json:"id,omitempty"`
	Status          string             `json:"status"`
	StartedAt       time.Time          `json:"started_at"`
	FinishedAt      time.Time          `json:"finished_at"`
	DurationMS      int64              `json:"duration_ms"`
	CheckedDocs     int                `json:"checked_docs"`
	NewInvoices     int                `json:"new_invoices"`
	UpdatedInvoices int                `json:"updated_invoices"`
	SkippedInvoices int                `json:"skipped_invoices"`
	Errors          SyncErrorAggregate `json:"errors"`
}

// ListSyncRunsRequest defines query parameters for the sync-run history.
type ListSyncRunsRequest struct {
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
}

// ToSyncRunResponse converts a models.SyncRun to a DTO.
func ToSyncRunResponse(run *models.SyncRun) SyncRunResponse {
	return SyncRunResponse{
		ID:              run.ID,
		Status:          string(run.Status),
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
		DurationMS:      run.DurationMS,
		CheckedDocs:     run.CheckedDocs,
		NewInvoices:     run.NewInvoices,
		UpdatedInvoices: run.UpdatedInvoices,
		SkippedInvoices: run.SkippedInvoices,
		Errors: SyncErrorAggregate{
			Count:      run.ErrorCount,
			FirstError: run.FirstErrorText,
		},
	}
}

// ToListSyncRunResponse converts a slice of models.SyncRun to DTOs.
func ToListSyncRunResponse(runs []models.SyncRun) []SyncRunResponse {
	res := make([]SyncRunResponse, len(runs))
	for i := range runs {
		res[i] = ToSyncRunResponse(&runs[i])
	}
	return res
}
