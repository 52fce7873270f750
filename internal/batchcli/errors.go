package batchcli

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyFile = errors.New("input file has no records")
	ErrBadHeader = errors.New("invalid csv header")
)
