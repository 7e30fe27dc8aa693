package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates a uniqueness violation or a deletion blocked by
// dependent records.
var ErrConflict = errors.New("resource conflict")

// ErrIntegrityGap indicates an account entry whose owning journal entry could
// not be resolved. Read paths log it and skip the orphan line instead of
// failing the whole report; write paths never produce it.
var ErrIntegrityGap = errors.New("integrity gap: orphan account entry")
