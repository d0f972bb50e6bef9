// Standard errors for the sampleatlas engines.
// See docs/ARCHITECTURE.md § Error Handling.
package types

import "errors"

// Reconciliation errors. ErrNoPrimarySource is the only fatal condition in
// the merge path: every seed-capable source was empty, so no table can be
// produced. Individual missing sources are absorbed and logged instead.
var (
	ErrNoPrimarySource = errors.New("no primary source available")
	ErrKeyNotPresent   = errors.New("join key not present in merged table")
	ErrEmptySource     = errors.New("source table is empty")
)

// Reference errors. A failed reference load degrades the classifier to
// generic-keyword mode; callers log these, they never abort classification.
var (
	ErrReferenceUnavailable = errors.New("cell line reference unavailable")
	ErrReferenceEmpty       = errors.New("cell line reference contains no usable names")
)

// Config validation errors.
var (
	ErrWorkersInvalid    = errors.New("fetch workers must be positive")
	ErrMaxResultsInvalid = errors.New("max results must be positive")
	ErrBaseURLEmpty      = errors.New("ena base url must not be empty")
)

// Table errors.
var (
	ErrColumnNotFound = errors.New("column not found")
	ErrNoHeader       = errors.New("table has no header row")
)
