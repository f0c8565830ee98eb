package apperrors

import "errors"

// ErrNotFound indicates that a referenced entity id does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates a uniqueness or referential-integrity violation
// reported by the storage backend.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates that the storage backend misbehaved, e.g. an insert
// did not return a generated id. Not user-correctable and never retried.
var ErrInternal = errors.New("internal storage error")
