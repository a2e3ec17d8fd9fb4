package leave

import "errors"

// Leave domain errors
var (
	ErrGrantNotFound    = errors.New("paid leave grant not found")
	ErrUsageNotFound    = errors.New("paid leave usage not found")
	ErrDuplicateUsage   = errors.New("usage already recorded for this date and type")
	ErrInvalidDays      = errors.New("days must be 1.0 for full-day or 0.5 for half-day leave")
	ErrNoGrantReference = errors.New("employee has no hire date or grant date to anchor grants")
)
