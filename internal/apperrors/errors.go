package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnavailable indicates that the backing store is not configured or reachable.
// Engine operations report this instead of panicking on a missing collaborator.
var ErrUnavailable = errors.New("store unavailable")

// ErrPartialWrite indicates that a multi-entry write (e.g. an installment plan)
// only partially succeeded. Entries that were written stay written; there is no
// automatic rollback. The wrapped error carries the individual failures.
var ErrPartialWrite = errors.New("partial write")
