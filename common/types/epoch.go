package types

import (
	"fmt"
	"time"
)

// Epoch is a half-open wall clock range [Start, End).
type Epoch struct {
	Start time.Time
	End   time.Time
}

// NewEpoch creates an epoch from the range boundaries.
func NewEpoch(start, end time.Time) Epoch {
	return Epoch{Start: start, End: end}
}

// Duration of the epoch.
func (e Epoch) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Contains returns true if t is within [Start, End).
func (e Epoch) Contains(t time.Time) bool {
	return !t.Before(e.Start) && t.Before(e.End)
}

// Empty returns true if the epoch does not contain any instant.
func (e Epoch) Empty() bool {
	return !e.Start.Before(e.End)
}

func (e Epoch) String() string {
	return fmt.Sprintf("[%s, %s)", e.Start.UTC().Format(time.RFC3339), e.End.UTC().Format(time.RFC3339))
}
