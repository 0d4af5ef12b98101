package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrUnknownTable = errors.New("metrics: unknown catalog table")
)
