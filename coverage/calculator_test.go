package coverage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hexmobile/mobile-verifier/common/types"
)

type testRadio struct {
	radioType  types.RadioType
	speedtests []types.Speedtest
	trust      []types.LocationTrust
	verified   bool
	hexes      []types.CoveredHex
}

func (r *testRadio) RadioType() types.RadioType                 { return r.radioType }
func (r *testRadio) Speedtests() []types.Speedtest              { return r.speedtests }
func (r *testRadio) LocationTrustScores() []types.LocationTrust { return r.trust }
func (r *testRadio) VerifiedRadioThreshold() bool               { return r.verified }

type testCoverageMap struct{}

func (testCoverageMap) Hexes(radio Radio) []types.CoveredHex {
	return radio.(*testRadio).hexes
}

var pointOfInterest = types.Assignments{
	Footfall:  types.AssignmentA,
	Landtype:  types.AssignmentA,
	Urbanized: types.AssignmentA,
}

func goodSpeedtests() []types.Speedtest {
	sample := types.Speedtest{
		Timestamp:     time.Unix(0, 0),
		UploadSpeed:   types.Mbps(15),
		DownloadSpeed: types.Mbps(150),
		Latency:       15,
	}
	return []types.Speedtest{sample, sample}
}

func fullTrustScores() []types.LocationTrust {
	return []types.LocationTrust{{DistanceToAsserted: 1, TrustScore: decimal.NewFromInt(1)}}
}

func hex(rank uint16, level types.SignalLevel) types.CoveredHex {
	return types.CoveredHex{
		Hex:         types.Hex(rank),
		Rank:        rank,
		SignalLevel: level,
		Assignments: pointOfInterest,
	}
}

func boosted(h types.CoveredHex, boost uint32) types.CoveredHex {
	h.Boosted = &boost
	return h
}

func newRadio(radioType types.RadioType, hexes ...types.CoveredHex) *testRadio {
	return &testRadio{
		radioType:  radioType,
		speedtests: goodSpeedtests(),
		trust:      fullTrustScores(),
		verified:   true,
		hexes:      hexes,
	}
}

func calculate(tb testing.TB, radio *testRadio) decimal.Decimal {
	tb.Helper()
	points, err := CalculateCoveragePoints(NewRewardableRadio(radio, testCoverageMap{}))
	require.NoError(tb, err)
	return points.Points
}

func requirePoints(tb testing.TB, expected string, actual decimal.Decimal) {
	tb.Helper()
	require.True(tb, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual)
}

func TestBoostedHex(t *testing.T) {
	radio := newRadio(types.IndoorWifi,
		hex(1, types.SignalHigh),
		boosted(hex(1, types.SignalLow), 4),
	)
	// the low signal hex is boosted to the level of a high signal hex
	requirePoints(t, "800", calculate(t, radio))

	radio.verified = false
	requirePoints(t, "500", calculate(t, radio))
}

func TestBaseRadioCoveragePoints(t *testing.T) {
	for _, tc := range []struct {
		radioType types.RadioType
		levels    []types.SignalLevel
		expected  string
	}{
		{types.OutdoorCbrs, []types.SignalLevel{types.SignalHigh, types.SignalMedium, types.SignalLow, types.SignalNone}, "7"},
		{types.IndoorCbrs, []types.SignalLevel{types.SignalHigh, types.SignalLow}, "125"},
		{types.OutdoorWifi, []types.SignalLevel{types.SignalHigh, types.SignalMedium, types.SignalLow, types.SignalNone}, "28"},
		{types.IndoorWifi, []types.SignalLevel{types.SignalHigh, types.SignalLow}, "500"},
	} {
		t.Run(tc.radioType.String(), func(t *testing.T) {
			var hexes []types.CoveredHex
			for _, level := range tc.levels {
				hexes = append(hexes, hex(1, level))
			}
			requirePoints(t, tc.expected, calculate(t, newRadio(tc.radioType, hexes...)))
		})
	}
}

func TestAssignmentMultipliers(t *testing.T) {
	a, b, c := types.AssignmentA, types.AssignmentB, types.AssignmentC
	withAssignments := func(footfall, landtype, urbanized types.Assignment) decimal.Decimal {
		h := hex(1, types.SignalHigh)
		h.Assignments = types.Assignments{Footfall: footfall, Landtype: landtype, Urbanized: urbanized}
		return calculate(t, newRadio(types.IndoorCbrs, h))
	}

	requirePoints(t, "100", withAssignments(a, a, a))
	requirePoints(t, "70", withAssignments(b, a, a))
	requirePoints(t, "40", withAssignments(c, a, a))
	requirePoints(t, "30", withAssignments(c, b, a))
	requirePoints(t, "5", withAssignments(c, c, a))
	requirePoints(t, "20", withAssignments(c, a, b))
	requirePoints(t, "15", withAssignments(c, b, b))
	requirePoints(t, "3", withAssignments(c, c, b))
	requirePoints(t, "50", withAssignments(b, c, b))

	total := decimal.Zero
	for _, footfall := range types.AssignmentValues {
		for _, landtype := range types.AssignmentValues {
			for _, urbanized := range types.AssignmentValues {
				points := withAssignments(footfall, landtype, urbanized)
				if urbanized == c {
					require.True(t, points.IsZero(), "outside of territory %s%s%s", footfall, landtype, urbanized)
				}
				total = total.Add(points)
			}
		}
	}
	requirePoints(t, "1073", total)
}

func TestOutdoorRadiosConsiderTopThreeRanks(t *testing.T) {
	radio := newRadio(types.OutdoorWifi,
		hex(1, types.SignalHigh),
		hex(2, types.SignalHigh),
		hex(3, types.SignalHigh),
		hex(42, types.SignalHigh),
	)
	requirePoints(t, "28", calculate(t, radio))
}

func TestIndoorRadiosConsiderOnlyFirstRank(t *testing.T) {
	radio := newRadio(types.IndoorWifi,
		hex(1, types.SignalHigh),
		hex(2, types.SignalHigh),
		hex(42, types.SignalHigh),
	)
	requirePoints(t, "400", calculate(t, radio))
}

func TestOutOfRankHexesAreDropped(t *testing.T) {
	without := newRadio(types.OutdoorCbrs, hex(1, types.SignalHigh), hex(3, types.SignalLow))
	with := newRadio(types.OutdoorCbrs, hex(1, types.SignalHigh), hex(3, types.SignalLow), hex(4, types.SignalHigh))
	require.True(t, calculate(t, without).Equal(calculate(t, with)))
}

func TestLocationTrustAverage(t *testing.T) {
	radio := newRadio(types.IndoorWifi, hex(1, types.SignalHigh))
	radio.trust = []types.LocationTrust{
		{DistanceToAsserted: 1, TrustScore: decimal.RequireFromString("0.1")},
		{DistanceToAsserted: 1, TrustScore: decimal.RequireFromString("0.2")},
		{DistanceToAsserted: 1, TrustScore: decimal.RequireFromString("0.3")},
		{DistanceToAsserted: 1, TrustScore: decimal.RequireFromString("0.4")},
	}
	requirePoints(t, "100", calculate(t, radio))
}

func TestLocationTrustBoostedDistancePenalty(t *testing.T) {
	trust := []types.LocationTrust{
		{DistanceToAsserted: 0, TrustScore: decimal.NewFromInt(1)},
		{DistanceToAsserted: 51, TrustScore: decimal.NewFromInt(1)},
		{DistanceToAsserted: 100, TrustScore: decimal.RequireFromString("0.1")},
		{DistanceToAsserted: 50, TrustScore: decimal.NewFromInt(1)},
	}

	// without boosted hexes the distance doesn't matter: (1 + 1 + 0.1 + 1) / 4 = 0.775
	radio := newRadio(types.IndoorWifi, hex(1, types.SignalHigh))
	radio.trust = trust
	requirePoints(t, "310", calculate(t, radio))

	// any boosted hex caps far away samples: (1 + 0.25 + 0.1 + 1) / 4 = 0.5875
	radio = newRadio(types.IndoorWifi, hex(1, types.SignalHigh), boosted(hex(2, types.SignalHigh), 10))
	radio.trust = trust
	requirePoints(t, "235", calculate(t, radio))

	// the cap applies even if the radio is not verified for boosted rewards
	radio.verified = false
	requirePoints(t, "235", calculate(t, radio))
}

func TestCbrsRadiosAreFullyTrusted(t *testing.T) {
	radio := newRadio(types.IndoorCbrs, boosted(hex(1, types.SignalHigh), 1))
	radio.trust = []types.LocationTrust{{DistanceToAsserted: 1000, TrustScore: decimal.Zero}}
	requirePoints(t, "100", calculate(t, radio))

	radio.trust = nil
	requirePoints(t, "100", calculate(t, radio))
}

func TestNoLocationTrustSamples(t *testing.T) {
	radio := newRadio(types.OutdoorWifi, hex(1, types.SignalHigh))
	radio.trust = nil
	points, err := CalculateCoveragePoints(NewRewardableRadio(radio, testCoverageMap{}))
	require.NoError(t, err)
	require.True(t, points.Points.IsZero())
	require.True(t, points.LocationTrustMultiplier.IsZero())
	requirePoints(t, "16", points.BasePoints)
}

func TestSpeedtestDegradation(t *testing.T) {
	withDownload := func(mbps uint64, samples int) decimal.Decimal {
		radio := newRadio(types.IndoorCbrs, hex(1, types.SignalHigh))
		radio.speedtests = nil
		for i := 0; i < samples; i++ {
			radio.speedtests = append(radio.speedtests, types.Speedtest{
				UploadSpeed:   types.Mbps(15),
				DownloadSpeed: types.Mbps(mbps),
				Latency:       15,
			})
		}
		return calculate(t, radio)
	}

	requirePoints(t, "100", withDownload(100, 2))
	requirePoints(t, "75", withDownload(88, 2))
	requirePoints(t, "50", withDownload(62, 2))
	requirePoints(t, "25", withDownload(42, 2))
	requirePoints(t, "0", withDownload(25, 2))
	requirePoints(t, "0", withDownload(100, 1))
	requirePoints(t, "0", withDownload(100, 0))
}

func TestPointsAreTruncated(t *testing.T) {
	radio := newRadio(types.IndoorWifi, hex(1, types.SignalLow))
	radio.trust = []types.LocationTrust{
		{DistanceToAsserted: 1, TrustScore: decimal.NewFromInt(1)},
		{DistanceToAsserted: 1, TrustScore: decimal.Zero},
		{DistanceToAsserted: 1, TrustScore: decimal.Zero},
	}
	// 100 * 1/3 = 33.333.. is truncated
	points := calculate(t, radio)
	requirePoints(t, "33.33", points)

	// 100 * 2/3 = 66.666.. is truncated, never rounded up
	radio.trust[1].TrustScore = decimal.NewFromInt(1)
	points = calculate(t, radio)
	requirePoints(t, "66.66", points)
	require.LessOrEqual(t, -points.Exponent(), int32(Precision))
}

func TestInvalidIndoorSignalLevel(t *testing.T) {
	for _, radioType := range []types.RadioType{types.IndoorWifi, types.IndoorCbrs} {
		for _, level := range []types.SignalLevel{types.SignalMedium, types.SignalNone} {
			radio := newRadio(radioType, hex(1, types.SignalHigh), hex(1, level))
			_, err := CalculateCoveragePoints(NewRewardableRadio(radio, testCoverageMap{}))
			require.ErrorIs(t, err, ErrInvalidSignalLevel)
			require.ErrorIs(t, err, ErrDataDefect)
		}
	}
}

func TestInvalidInputs(t *testing.T) {
	radio := newRadio(types.OutdoorWifi, hex(0, types.SignalHigh))
	_, err := CalculateCoveragePoints(NewRewardableRadio(radio, testCoverageMap{}))
	require.ErrorIs(t, err, ErrInvalidRank)

	radio = newRadio(types.OutdoorWifi, boosted(hex(1, types.SignalHigh), 0))
	_, err = CalculateCoveragePoints(NewRewardableRadio(radio, testCoverageMap{}))
	require.ErrorIs(t, err, ErrInvalidBoost)

	h := hex(1, types.SignalHigh)
	h.Assignments = types.Assignments{}
	radio = newRadio(types.OutdoorWifi, h)
	_, err = CalculateCoveragePoints(NewRewardableRadio(radio, testCoverageMap{}))
	require.ErrorIs(t, err, ErrInvalidAssignments)

	radio = newRadio(types.RadioType(0), hex(1, types.SignalHigh))
	_, err = CalculateCoveragePoints(NewRewardableRadio(radio, testCoverageMap{}))
	require.ErrorIs(t, err, ErrDataDefect)
}

func TestRewardableRadioIsImmutable(t *testing.T) {
	radio := newRadio(types.IndoorWifi, boosted(hex(1, types.SignalLow), 4))
	rewardable := NewRewardableRadio(radio, testCoverageMap{})

	*radio.hexes[0].Boosted = 1
	radio.hexes[0].SignalLevel = types.SignalHigh
	radio.verified = false

	points, err := CalculateCoveragePoints(rewardable)
	require.NoError(t, err)
	requirePoints(t, "400", points.Points)
	require.Equal(t, rewardable, points.Radio)
}

func TestValidSignalLevel(t *testing.T) {
	for _, radioType := range types.RadioTypes {
		for _, level := range types.SignalLevels {
			expected := !radioType.IsIndoor() || level == types.SignalHigh || level == types.SignalLow
			require.Equal(t, expected, ValidSignalLevel(radioType, level), "%s %s", radioType, level)
		}
	}
	require.False(t, ValidSignalLevel(types.RadioType(0), types.SignalHigh))
}
