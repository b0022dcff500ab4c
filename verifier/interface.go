package verifier

import (
	"context"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/rewards"
	"github.com/hexmobile/mobile-verifier/shares"
)

//go:generate mockgen -typed -package=verifier -destination=./mocks.go -source=./interface.go

type epochVerifier interface {
	VerifyEpoch(ctx context.Context, epoch types.Epoch) (*shares.Shares, error)
	RewardEpoch(ctx context.Context, epoch types.Epoch, heartbeats []types.Heartbeat) (*rewards.SubnetworkRewards, error)
}

type rewardCalculator interface {
	Rewards(ctx context.Context, epoch types.Epoch, heartbeats []types.Heartbeat) (*rewards.SubnetworkRewards, error)
}

// Writer is an output sink. The returned channel receives the result of persisting records.
type Writer interface {
	Write(ctx context.Context, records ...any) (<-chan error, error)
}
