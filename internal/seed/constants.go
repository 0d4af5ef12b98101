package seed

import "errors"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier  = 100
	maxReportedMismatches = 10
)

// Sentinel errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrVerification     = errors.New("verification failed")
	ErrInvalidConfig    = errors.New("invalid seed config")
)
