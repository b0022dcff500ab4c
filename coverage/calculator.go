// Package coverage computes the reward weight of a radio from the hexes it covered in an epoch.
package coverage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/speedtest"
)

// Precision of coverage points in decimal places.
const Precision = 2

// CoveragePoints is the result of the calculation for one radio.
type CoveragePoints struct {
	// Points is the reward weight of the radio, truncated to Precision decimal places.
	Points decimal.Decimal
	// BasePoints is the sum of the points of every rewarded hex, before radio wide multipliers.
	BasePoints              decimal.Decimal
	LocationTrustMultiplier decimal.Decimal
	SpeedtestMultiplier     decimal.Decimal
	Radio                   RewardableRadio
}

// CalculateCoveragePoints scores a radio.
//
// The calculation is deterministic and doesn't have side effects. Errors are returned only for
// radios that violate data invariants; all of them wrap ErrDataDefect.
func CalculateCoveragePoints(radio RewardableRadio) (CoveragePoints, error) {
	base, err := hexPoints(radio)
	if err != nil {
		return CoveragePoints{}, err
	}
	trust := locationTrustMultiplier(radio)
	speed := speedtest.MultiplierFor(radio.speedtests)
	return CoveragePoints{
		Points:                  base.Mul(trust).Mul(speed).Truncate(Precision),
		BasePoints:              base,
		LocationTrustMultiplier: trust,
		SpeedtestMultiplier:     speed,
		Radio:                   radio,
	}, nil
}

func hexPoints(radio RewardableRadio) (decimal.Decimal, error) {
	if !radio.radioType.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrInvalidRadioType, radio.radioType)
	}
	ranks := rankMultipliers(radio.radioType)
	total := decimal.Zero
	for _, hex := range radio.hexes {
		if hex.Rank < 1 {
			return decimal.Zero, fmt.Errorf("%w: hex %s", ErrInvalidRank, hex.Hex)
		}
		if int(hex.Rank) > len(ranks) {
			continue
		}
		points, err := basePoints(radio.radioType, hex.SignalLevel)
		if err != nil {
			return decimal.Zero, fmt.Errorf("hex %s: %w", hex.Hex, err)
		}
		assignment, err := assignmentMultiplier(hex.Assignments)
		if err != nil {
			return decimal.Zero, fmt.Errorf("hex %s: %w", hex.Hex, err)
		}
		boost, err := boostMultiplier(radio.verifiedRadioThreshold, hex)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(points.Mul(assignment).Mul(ranks[hex.Rank-1]).Mul(boost))
	}
	return total, nil
}

// boostMultiplier is 1 for radios that are not verified to receive boosted rewards.
func boostMultiplier(verified bool, hex types.CoveredHex) (decimal.Decimal, error) {
	if hex.Boosted == nil {
		return decimal.NewFromInt(1), nil
	}
	if *hex.Boosted == 0 {
		return decimal.Zero, fmt.Errorf("%w: hex %s", ErrInvalidBoost, hex.Hex)
	}
	if !verified {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromInt(int64(*hex.Boosted)), nil
}
