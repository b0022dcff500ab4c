package coverage

import (
	"errors"
	"fmt"
)

// ErrDataDefect marks invariant violations in the assembled radio data. Such errors are
// never transient: retrying the calculation with the same input fails the same way.
var ErrDataDefect = errors.New("coverage: data defect")

var (
	ErrInvalidSignalLevel = fmt.Errorf("%w: invalid signal level for radio type", ErrDataDefect)
	ErrInvalidRank        = fmt.Errorf("%w: rank must be positive", ErrDataDefect)
	ErrInvalidBoost       = fmt.Errorf("%w: boost multiplier must be positive", ErrDataDefect)
	ErrInvalidAssignments = fmt.Errorf("%w: unknown hex assignment", ErrDataDefect)
	ErrInvalidRadioType   = fmt.Errorf("%w: unknown radio type", ErrDataDefect)
)
