package coverage

import (
	"github.com/shopspring/decimal"
)

// MaxBoostedDistance is the distance in meters from the asserted location after which
// the trust score of a radio covering boosted hexes is capped.
const MaxBoostedDistance = 50

var (
	boostedTrustCap = decimal.New(25, -2)
	fullTrust       = decimal.New(100, -2)
)

// locationTrustMultiplier averages trust scores of the radio.
//
// Cbrs radios are equipped with gps and are always fully trusted. A radio without any samples
// has no trust.
func locationTrustMultiplier(radio RewardableRadio) decimal.Decimal {
	if radio.radioType.IsCbrs() {
		return fullTrust
	}
	if len(radio.locationTrustScores) == 0 {
		return decimal.Zero
	}
	boosted := radio.anyBoosted()
	total := decimal.Zero
	for _, sample := range radio.locationTrustScores {
		score := sample.TrustScore
		if boosted && sample.DistanceToAsserted > MaxBoostedDistance {
			score = decimal.Min(score, boostedTrustCap)
		}
		total = total.Add(score)
	}
	return total.Div(decimal.NewFromInt(int64(len(radio.locationTrustScores))))
}
