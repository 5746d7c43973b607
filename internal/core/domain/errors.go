package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a scoring configuration that breaks the
	// weight ordering contract or contains out-of-range values.
	ErrInvalidConfig = errors.New("invalid scoring config")

	// ErrSnapshotUnavailable indicates no index snapshot has been
	// published yet. Queries cannot be resolved before the first load.
	ErrSnapshotUnavailable = errors.New("index snapshot unavailable")

	// ErrEmptyDataset indicates the ingested dataset contained no flows.
	ErrEmptyDataset = errors.New("dataset contains no data flows")
)
