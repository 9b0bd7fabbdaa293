// Package pricing computes rental fees. Pure arithmetic, no clock access:
// callers pass both timestamps so settlement is deterministic and testable.
package pricing

import (
	"errors"
	"time"
)

var ErrNegativeDuration = errors.New("pricing: end precedes start")

// Price bills whole elapsed minutes, floored, with a minimum of one minute.
// A rental under 60 seconds costs one minute; this rounding policy is part
// of the public contract and must not change.
func Price(start, end time.Time, ratePerMinuteCents int64) (int64, error) {
	if end.Before(start) {
		return 0, ErrNegativeDuration
	}
	minutes := int64(end.Sub(start) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes * ratePerMinuteCents, nil
}
