package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfiguration indicates a deployment misconfiguration, e.g. the project
// tag does not exist in the archive. A sync run aborts before any writes.
var ErrConfiguration = errors.New("configuration error")

// ErrTransport indicates the document archive was unreachable or timed out.
// Fatal for the current sync run; prior progress is retained.
var ErrTransport = errors.New("archive transport error")

// ErrSyncInProgress indicates that a sync run is already active. At most one
// run executes at a time per deployment.
var ErrSyncInProgress = errors.New("sync already in progress")
