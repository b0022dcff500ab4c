package coverage

import (
	"slices"

	"github.com/hexmobile/mobile-verifier/common/types"
)

// Radio provides the per radio inputs of the calculation.
type Radio interface {
	RadioType() types.RadioType
	Speedtests() []types.Speedtest
	LocationTrustScores() []types.LocationTrust
	// VerifiedRadioThreshold is true if the radio is certified to receive boosted rewards.
	VerifiedRadioThreshold() bool
}

// CoverageMap provides the hexes covered by a radio during the epoch.
type CoverageMap interface {
	Hexes(Radio) []types.CoveredHex
}

// RewardableRadio is a fully assembled input of the calculation for one radio in one epoch.
type RewardableRadio struct {
	radioType              types.RadioType
	speedtests             []types.Speedtest
	locationTrustScores    []types.LocationTrust
	verifiedRadioThreshold bool
	hexes                  []types.CoveredHex
}

// NewRewardableRadio assembles a radio from its radio and coverage map sources.
// Inputs are copied, the result does not change if the sources change later.
func NewRewardableRadio(radio Radio, coverageMap CoverageMap) RewardableRadio {
	hexes := coverageMap.Hexes(radio)
	copied := make([]types.CoveredHex, len(hexes))
	for i, hex := range hexes {
		copied[i] = hex
		if hex.Boosted != nil {
			boost := *hex.Boosted
			copied[i].Boosted = &boost
		}
	}
	return RewardableRadio{
		radioType:              radio.RadioType(),
		speedtests:             slices.Clone(radio.Speedtests()),
		locationTrustScores:    slices.Clone(radio.LocationTrustScores()),
		verifiedRadioThreshold: radio.VerifiedRadioThreshold(),
		hexes:                  copied,
	}
}

func (r RewardableRadio) RadioType() types.RadioType {
	return r.radioType
}

func (r RewardableRadio) Speedtests() []types.Speedtest {
	return slices.Clone(r.speedtests)
}

func (r RewardableRadio) LocationTrustScores() []types.LocationTrust {
	return slices.Clone(r.locationTrustScores)
}

func (r RewardableRadio) VerifiedRadioThreshold() bool {
	return r.verifiedRadioThreshold
}

// Hexes returns the covered hexes, including the ones that are not rewarded due to their rank.
func (r RewardableRadio) Hexes() []types.CoveredHex {
	return slices.Clone(r.hexes)
}

func (r RewardableRadio) anyBoosted() bool {
	for _, hex := range r.hexes {
		if hex.Boosted != nil {
			return true
		}
	}
	return false
}
