package models

import "time"

// SyncRunStatus is the terminal state of a reconciliation pass.
type SyncRunStatus string

const (
	SyncRunCompleted SyncRunStatus = "completed"
	SyncRunFailed    SyncRunStatus = "failed"
)

// SyncRun is an immutable record of one fetch-extract-reconcile pass.
// Only the first captured error message is retained to keep the record
// bounded in size.
type SyncRun struct {
	ID              int64         `db:"id"`
	Status          SyncRunStatus `db:"status"`
	StartedAt       time.Time     `db:"started_at"`
	FinishedAt      time.Time     `db:"finished_at"`
	DurationMS      int64         `db:"duration_ms"`
	CheckedDocs     int           `db:"checked_docs"`
	NewInvoices     int           `db:"new_invoices"`
	UpdatedInvoices int           `db:"updated_invoices"`
	SkippedInvoices int           `db:"skipped_invoices"`
	ErrorCount      int           `db:"error_count"`
	FirstErrorText  *string       `db:"first_error_text"`
}
