package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrBackpressure  = errors.New("job queue full")
	ErrBatchTooLarge = errors.New("batch exceeds row limit")
)
