package verifier

import (
	"context"
	"fmt"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/rewards"
	"github.com/hexmobile/mobile-verifier/shares"
)

// Verifier validates reports of verification epochs and computes rewards of reward epochs.
type Verifier struct {
	source     shares.Source
	calculator rewardCalculator
}

func NewVerifier(source shares.Source, calculator rewardCalculator) *Verifier {
	return &Verifier{source: source, calculator: calculator}
}

func (v *Verifier) VerifyEpoch(ctx context.Context, epoch types.Epoch) (*shares.Shares, error) {
	reports, err := v.source.Reports(ctx, epoch)
	if err != nil {
		return nil, fmt.Errorf("reports for %s: %w", epoch, err)
	}
	return shares.Validate(reports, epoch), nil
}

func (v *Verifier) RewardEpoch(
	ctx context.Context,
	epoch types.Epoch,
	heartbeats []types.Heartbeat,
) (*rewards.SubnetworkRewards, error) {
	return v.calculator.Rewards(ctx, epoch, heartbeats)
}
