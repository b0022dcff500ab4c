package coverage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hexmobile/mobile-verifier/common/types"
)

var (
	indoorRankMultipliers  = []decimal.Decimal{decimal.New(100, -2)}
	outdoorRankMultipliers = []decimal.Decimal{
		decimal.New(100, -2),
		decimal.New(50, -2),
		decimal.New(25, -2),
	}
)

// rankMultipliers returns per rank multipliers, indexed by rank - 1.
// The length of the slice is the max rank that is rewarded for the radio type.
func rankMultipliers(radioType types.RadioType) []decimal.Decimal {
	if radioType.IsIndoor() {
		return indoorRankMultipliers
	}
	return outdoorRankMultipliers
}

// basePoints returns coverage points of a single hex for the radio type and observed signal level.
func basePoints(radioType types.RadioType, level types.SignalLevel) (decimal.Decimal, error) {
	var points int64
	switch radioType {
	case types.IndoorWifi:
		switch level {
		case types.SignalHigh:
			points = 400
		case types.SignalLow:
			points = 100
		default:
			return decimal.Zero, fmt.Errorf("%w: %s radios cannot have %s signal level",
				ErrInvalidSignalLevel, radioType, level)
		}
	case types.OutdoorWifi:
		switch level {
		case types.SignalHigh:
			points = 16
		case types.SignalMedium:
			points = 8
		case types.SignalLow:
			points = 4
		case types.SignalNone:
			points = 0
		default:
			return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidSignalLevel, level)
		}
	case types.IndoorCbrs:
		switch level {
		case types.SignalHigh:
			points = 100
		case types.SignalLow:
			points = 25
		default:
			return decimal.Zero, fmt.Errorf("%w: %s radios cannot have %s signal level",
				ErrInvalidSignalLevel, radioType, level)
		}
	case types.OutdoorCbrs:
		switch level {
		case types.SignalHigh:
			points = 4
		case types.SignalMedium:
			points = 2
		case types.SignalLow:
			points = 1
		case types.SignalNone:
			points = 0
		default:
			return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidSignalLevel, level)
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidRadioType, radioType)
	}
	return decimal.NewFromInt(points), nil
}

// assignmentMultiplier scales coverage points by the land classification of the hex.
//
// urbanized C is outside of the serviceable territory and overrides every other axis.
// footfall A marks a point of interest.
func assignmentMultiplier(a types.Assignments) (decimal.Decimal, error) {
	if !a.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %+v", ErrInvalidAssignments, a)
	}
	if a.Urbanized == types.AssignmentC {
		return decimal.Zero, nil
	}
	var hundredths int64
	switch a.Footfall {
	case types.AssignmentA:
		hundredths = 100
	case types.AssignmentB:
		switch a.Urbanized {
		case types.AssignmentA:
			hundredths = 70
		case types.AssignmentB:
			hundredths = 50
		}
	case types.AssignmentC:
		switch a.Urbanized {
		case types.AssignmentA:
			switch a.Landtype {
			case types.AssignmentA:
				hundredths = 40
			case types.AssignmentB:
				hundredths = 30
			case types.AssignmentC:
				hundredths = 5
			}
		case types.AssignmentB:
			switch a.Landtype {
			case types.AssignmentA:
				hundredths = 20
			case types.AssignmentB:
				hundredths = 15
			case types.AssignmentC:
				hundredths = 3
			}
		}
	}
	return decimal.New(hundredths, -2), nil
}

// ValidSignalLevel returns false if radios of the type can never observe the signal level.
func ValidSignalLevel(radioType types.RadioType, level types.SignalLevel) bool {
	_, err := basePoints(radioType, level)
	return err == nil
}
