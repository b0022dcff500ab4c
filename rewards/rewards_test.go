package rewards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/follower"
	"github.com/hexmobile/mobile-verifier/log/logtest"
)

var (
	epoch = types.NewEpoch(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	)
	poi = types.Assignments{
		Footfall:  types.AssignmentA,
		Landtype:  types.AssignmentA,
		Urbanized: types.AssignmentA,
	}
)

type testCalculator struct {
	*Calculator
	chain  *MockchainStateClient
	oracle *MockHexOracle
}

func newTestCalculator(tb testing.TB) *testCalculator {
	ctrl := gomock.NewController(tb)
	tc := &testCalculator{
		chain:  NewMockchainStateClient(ctrl),
		oracle: NewMockHexOracle(ctrl),
	}
	tc.Calculator = NewCalculator(tc.chain, tc.oracle, WithLogger(logtest.New(tb)))
	return tc
}

// expectOracle classifies every hex as a point of interest, without boosts and verified radios.
func (tc *testCalculator) expectOracle(boosts map[types.Hex]uint32, verified ...string) {
	tc.oracle.EXPECT().Assignments(gomock.Any()).Return(poi, nil).AnyTimes()
	tc.oracle.EXPECT().Boosts(epoch).Return(boosts, nil)
	tc.oracle.EXPECT().IsVerified(gomock.Any(), epoch.End).DoAndReturn(
		func(radio string, _ time.Time) (bool, error) {
			for _, v := range verified {
				if v == radio {
					return true, nil
				}
			}
			return false, nil
		}).AnyTimes()
}

// heartbeats returns two heartbeats of the radio with good speedtests and full trust.
func heartbeats(radio string, radioType types.RadioType, offset time.Duration, cov ...types.HexSignal) []types.Heartbeat {
	var rst []types.Heartbeat
	for i := 0; i < 2; i++ {
		ts := epoch.Start.Add(offset + time.Duration(i)*time.Hour)
		rst = append(rst, types.Heartbeat{
			RadioID:   radio,
			RadioType: radioType,
			Timestamp: ts,
			LocationTrust: types.LocationTrust{
				DistanceToAsserted: 1,
				TrustScore:         decimal.NewFromInt(1),
			},
			Speedtest: &types.Speedtest{
				Timestamp:     ts,
				UploadSpeed:   types.Mbps(10),
				DownloadSpeed: types.Mbps(100),
				Latency:       30,
			},
			Coverage: cov,
		})
	}
	return rst
}

func signal(hex types.Hex, level types.SignalLevel) types.HexSignal {
	return types.HexSignal{Hex: hex, SignalLevel: level}
}

func concat(lists ...[]types.Heartbeat) []types.Heartbeat {
	var rst []types.Heartbeat
	for _, l := range lists {
		rst = append(rst, l...)
	}
	return rst
}

func requirePoints(tb testing.TB, expected map[string]string, points []RadioPoints) {
	tb.Helper()
	actual := map[string]string{}
	for _, p := range points {
		actual[p.RadioID] = p.Points.String()
	}
	require.Equal(tb, expected, actual)
}

func TestOutdoorRanking(t *testing.T) {
	tc := newTestCalculator(t)
	tc.expectOracle(nil)

	points, err := tc.Points(epoch, concat(
		heartbeats("d", types.OutdoorWifi, 4*time.Minute, signal(1, types.SignalHigh)),
		heartbeats("c", types.OutdoorWifi, 3*time.Minute, signal(1, types.SignalHigh)),
		heartbeats("a", types.OutdoorWifi, time.Minute, signal(1, types.SignalHigh)),
		heartbeats("b", types.OutdoorWifi, 2*time.Minute, signal(1, types.SignalHigh)),
	))
	require.NoError(t, err)
	require.Equal(t, "a", points[0].RadioID)
	requirePoints(t, map[string]string{"a": "16", "b": "8", "c": "4", "d": "0"}, points)
}

func TestSignalLevelRanksFirst(t *testing.T) {
	tc := newTestCalculator(t)
	tc.expectOracle(nil)

	points, err := tc.Points(epoch, concat(
		heartbeats("early", types.OutdoorWifi, 0, signal(1, types.SignalLow)),
		heartbeats("late", types.OutdoorWifi, time.Minute, signal(1, types.SignalHigh)),
	))
	require.NoError(t, err)
	// late: high at rank 1, early: low at rank 2
	requirePoints(t, map[string]string{"late": "16", "early": "2"}, points)
}

func TestRankingTieBrokenByRadioID(t *testing.T) {
	tc := newTestCalculator(t)
	tc.expectOracle(nil)

	points, err := tc.Points(epoch, concat(
		heartbeats("y", types.IndoorWifi, 0, signal(1, types.SignalHigh)),
		heartbeats("x", types.IndoorWifi, 0, signal(1, types.SignalHigh)),
	))
	require.NoError(t, err)
	requirePoints(t, map[string]string{"x": "400", "y": "0"}, points)
}

func TestIndoorAndOutdoorRankedSeparately(t *testing.T) {
	tc := newTestCalculator(t)
	tc.expectOracle(nil)

	points, err := tc.Points(epoch, concat(
		heartbeats("outdoor", types.OutdoorCbrs, time.Minute, signal(1, types.SignalHigh)),
		heartbeats("indoor", types.IndoorCbrs, 2*time.Minute, signal(1, types.SignalHigh)),
	))
	require.NoError(t, err)
	requirePoints(t, map[string]string{"outdoor": "4", "indoor": "100"}, points)
}

func TestStrongestObservationCounts(t *testing.T) {
	tc := newTestCalculator(t)
	tc.expectOracle(nil)

	hbs := heartbeats("radio", types.OutdoorWifi, 0, signal(1, types.SignalLow))
	hbs[1].Coverage = []types.HexSignal{signal(1, types.SignalHigh), signal(2, types.SignalMedium)}
	points, err := tc.Points(epoch, hbs)
	require.NoError(t, err)
	requirePoints(t, map[string]string{"radio": "24"}, points)
}

func TestBoostsApplyToVerifiedRadios(t *testing.T) {
	tc := newTestCalculator(t)
	tc.expectOracle(map[types.Hex]uint32{2: 4, 12: 4}, "verified")

	points, err := tc.Points(epoch, concat(
		heartbeats("verified", types.IndoorWifi, 0, signal(1, types.SignalHigh), signal(2, types.SignalLow)),
		heartbeats("unverified", types.IndoorWifi, 0, signal(3, types.SignalHigh), signal(12, types.SignalLow)),
	))
	require.NoError(t, err)
	requirePoints(t, map[string]string{"verified": "800", "unverified": "500"}, points)
}

func TestUnclassifiedHexEarnsNothing(t *testing.T) {
	tc := newTestCalculator(t)
	tc.oracle.EXPECT().Assignments(types.Hex(1)).Return(types.OutsideTerritory, nil)
	tc.oracle.EXPECT().Assignments(types.Hex(2)).Return(poi, nil)
	tc.oracle.EXPECT().Boosts(epoch).Return(nil, nil)
	tc.oracle.EXPECT().IsVerified("radio", epoch.End).Return(false, nil)

	points, err := tc.Points(epoch,
		heartbeats("radio", types.OutdoorWifi, 0, signal(1, types.SignalHigh), signal(2, types.SignalLow)))
	require.NoError(t, err)
	requirePoints(t, map[string]string{"radio": "4"}, points)
}

func TestConflictingRadioTypeIgnored(t *testing.T) {
	tc := newTestCalculator(t)
	tc.expectOracle(nil)

	hbs := concat(
		heartbeats("radio", types.OutdoorWifi, 0, signal(1, types.SignalHigh)),
		heartbeats("radio", types.IndoorWifi, time.Minute, signal(2, types.SignalHigh)),
	)
	points, err := tc.Points(epoch, hbs)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, types.OutdoorWifi, points[0].Radio.RadioType())
	requirePoints(t, map[string]string{"radio": "16"}, points)
}

func TestRewardsAllocation(t *testing.T) {
	tc := newTestCalculator(t)
	tc.expectOracle(nil)
	tc.chain.EXPECT().ChainState(gomock.Any(), epoch).Return(&follower.ChainState{Height: 42, Emission: 1000}, nil)

	rewards, err := tc.Rewards(context.Background(), epoch, concat(
		heartbeats("a", types.OutdoorWifi, time.Minute, signal(1, types.SignalHigh)),
		heartbeats("b", types.OutdoorWifi, 2*time.Minute, signal(1, types.SignalHigh)),
		heartbeats("c", types.OutdoorWifi, 3*time.Minute, signal(1, types.SignalHigh)),
		heartbeats("d", types.OutdoorWifi, 4*time.Minute, signal(1, types.SignalHigh)),
	))
	require.NoError(t, err)
	require.Equal(t, epoch, rewards.Epoch)
	require.Equal(t, uint64(42), rewards.ChainHeight)
	require.Equal(t, uint64(1000), rewards.Emission)
	require.Equal(t, "28", rewards.TotalPoints.String())

	amounts := map[string]uint64{}
	for _, r := range rewards.Rewards {
		amounts[r.RadioID] = r.Amount
		require.Equal(t, types.OutdoorWifi, r.RadioType)
	}
	require.Equal(t, map[string]uint64{"a": 571, "b": 285, "c": 142}, amounts)
	require.Equal(t, uint64(998), rewards.Distributed())
	require.LessOrEqual(t, rewards.Distributed(), rewards.Emission)
}

func TestRewardsWithoutHeartbeats(t *testing.T) {
	tc := newTestCalculator(t)
	tc.oracle.EXPECT().Boosts(epoch).Return(nil, nil)
	tc.chain.EXPECT().ChainState(gomock.Any(), epoch).Return(&follower.ChainState{Height: 1, Emission: 1000}, nil)

	rewards, err := tc.Rewards(context.Background(), epoch, nil)
	require.NoError(t, err)
	require.Empty(t, rewards.Rewards)
	require.True(t, rewards.TotalPoints.IsZero())
	require.Zero(t, rewards.Distributed())
}

func TestRewardsErrors(t *testing.T) {
	failure := errors.New("unavailable")
	hbs := heartbeats("radio", types.OutdoorWifi, 0, signal(1, types.SignalHigh))

	t.Run("boosts", func(t *testing.T) {
		tc := newTestCalculator(t)
		tc.oracle.EXPECT().Boosts(epoch).Return(nil, failure)
		_, err := tc.Rewards(context.Background(), epoch, hbs)
		require.ErrorIs(t, err, failure)
	})
	t.Run("assignments", func(t *testing.T) {
		tc := newTestCalculator(t)
		tc.oracle.EXPECT().Boosts(epoch).Return(nil, nil)
		tc.oracle.EXPECT().IsVerified("radio", epoch.End).Return(false, nil)
		tc.oracle.EXPECT().Assignments(types.Hex(1)).Return(types.Assignments{}, failure)
		_, err := tc.Rewards(context.Background(), epoch, hbs)
		require.ErrorIs(t, err, failure)
	})
	t.Run("chain state", func(t *testing.T) {
		tc := newTestCalculator(t)
		tc.expectOracle(nil)
		tc.chain.EXPECT().ChainState(gomock.Any(), epoch).Return(nil, failure)
		_, err := tc.Rewards(context.Background(), epoch, hbs)
		require.ErrorIs(t, err, failure)
	})
}

func TestRewardsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := NewMockWriter(ctrl)
	rewards := &SubnetworkRewards{
		Epoch:       epoch,
		ChainHeight: 42,
		Emission:    100,
		TotalPoints: decimal.NewFromInt(20),
		Rewards: []RadioReward{
			{RadioID: "a", RadioType: types.IndoorWifi, CoveragePoints: decimal.NewFromInt(15), Amount: 75},
			{RadioID: "b", RadioType: types.OutdoorWifi, CoveragePoints: decimal.NewFromInt(5), Amount: 25},
		},
	}
	ack := make(chan error, 1)
	ack <- nil
	writer.EXPECT().Write(gomock.Any(),
		RewardShare{
			StartEpoch: epoch.Start, EndEpoch: epoch.End, ChainHeight: 42,
			RadioID: "a", RadioType: types.IndoorWifi, CoveragePoints: decimal.NewFromInt(15), Amount: 75,
		},
		RewardShare{
			StartEpoch: epoch.Start, EndEpoch: epoch.End, ChainHeight: 42,
			RadioID: "b", RadioType: types.OutdoorWifi, CoveragePoints: decimal.NewFromInt(5), Amount: 25,
		},
	).Return(ack, nil)

	confirmed, err := rewards.Write(context.Background(), writer)
	require.NoError(t, err)
	require.NoError(t, <-confirmed)

	failure := errors.New("closed")
	writer.EXPECT().Write(gomock.Any()).Return(nil, failure)
	_, err = (&SubnetworkRewards{Epoch: epoch}).Write(context.Background(), writer)
	require.ErrorIs(t, err, failure)
}
