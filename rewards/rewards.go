// Package rewards computes the rewards of an epoch from the heartbeats validated during it.
package rewards

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/coverage"
)

// RadioReward is the share of a single radio in the epoch emission.
type RadioReward struct {
	RadioID        string          `json:"radio_id"`
	RadioType      types.RadioType `json:"radio_type"`
	CoveragePoints decimal.Decimal `json:"coverage_points"`
	Amount         uint64          `json:"amount"`
}

// SubnetworkRewards are the rewards of all radios for an epoch.
type SubnetworkRewards struct {
	Epoch       types.Epoch
	ChainHeight uint64
	Emission    uint64
	TotalPoints decimal.Decimal
	Rewards     []RadioReward
}

// RewardShare is the persisted form of a radio reward.
type RewardShare struct {
	StartEpoch     time.Time       `json:"start_epoch"`
	EndEpoch       time.Time       `json:"end_epoch"`
	ChainHeight    uint64          `json:"chain_height"`
	RadioID        string          `json:"radio_id"`
	RadioType      types.RadioType `json:"radio_type"`
	CoveragePoints decimal.Decimal `json:"coverage_points"`
	Amount         uint64          `json:"amount"`
}

// Distributed returns the sum of all rewarded amounts. It never exceeds the emission.
func (s *SubnetworkRewards) Distributed() uint64 {
	var total uint64
	for _, r := range s.Rewards {
		total += r.Amount
	}
	return total
}

// Write hands reward shares to the writer. The returned channel receives the result of
// persisting them. An epoch without rewards is written as an empty file.
func (s *SubnetworkRewards) Write(ctx context.Context, w Writer) (<-chan error, error) {
	records := make([]any, 0, len(s.Rewards))
	for _, r := range s.Rewards {
		records = append(records, RewardShare{
			StartEpoch:     s.Epoch.Start,
			EndEpoch:       s.Epoch.End,
			ChainHeight:    s.ChainHeight,
			RadioID:        r.RadioID,
			RadioType:      r.RadioType,
			CoveragePoints: r.CoveragePoints,
			Amount:         r.Amount,
		})
	}
	ack, err := w.Write(ctx, records...)
	if err != nil {
		return nil, fmt.Errorf("write rewards for %s: %w", s.Epoch, err)
	}
	return ack, nil
}

type Opt func(*Calculator)

func WithLogger(logger *zap.Logger) Opt {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// Calculator scores radios and denominates their points against the chain state.
type Calculator struct {
	logger *zap.Logger
	chain  chainStateClient
	oracle HexOracle
}

func NewCalculator(chain chainStateClient, oracle HexOracle, opts ...Opt) *Calculator {
	c := &Calculator{
		logger: zap.NewNop(),
		chain:  chain,
		oracle: oracle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RadioPoints are coverage points of a radio.
type RadioPoints struct {
	RadioID string
	coverage.CoveragePoints
}

// Points scores every radio that sent heartbeats during the epoch. Radios are ordered by id.
func (c *Calculator) Points(epoch types.Epoch, heartbeats []types.Heartbeat) ([]RadioPoints, error) {
	grouped, conflicting := radios(heartbeats)
	for _, hb := range conflicting {
		c.logger.Warn("ignoring heartbeat with a radio type that changed during the epoch",
			zap.String("radio", hb.RadioID),
			zap.Stringer("type", hb.RadioType),
			zap.Time("timestamp", hb.Timestamp),
		)
	}
	boosts, err := c.oracle.Boosts(epoch)
	if err != nil {
		return nil, fmt.Errorf("boosts for %s: %w", epoch, err)
	}
	for _, r := range grouped {
		r.verified, err = c.oracle.IsVerified(r.id, epoch.End)
		if err != nil {
			return nil, fmt.Errorf("verified threshold of %s: %w", r.id, err)
		}
	}
	cmap, err := newCoverageMap(grouped, c.oracle, boosts)
	if err != nil {
		return nil, err
	}
	points := make([]RadioPoints, 0, len(grouped))
	for _, r := range grouped {
		p, err := coverage.CalculateCoveragePoints(coverage.NewRewardableRadio(r, cmap))
		if err != nil {
			return nil, fmt.Errorf("coverage points of %s: %w", r.id, err)
		}
		points = append(points, RadioPoints{RadioID: r.id, CoveragePoints: p})
	}
	return points, nil
}

// Rewards computes rewards for the epoch.
func (c *Calculator) Rewards(ctx context.Context, epoch types.Epoch, heartbeats []types.Heartbeat) (*SubnetworkRewards, error) {
	points, err := c.Points(epoch, heartbeats)
	if err != nil {
		return nil, err
	}
	state, err := c.chain.ChainState(ctx, epoch)
	if err != nil {
		return nil, err
	}
	rst := &SubnetworkRewards{
		Epoch:       epoch,
		ChainHeight: state.Height,
		Emission:    state.Emission,
		TotalPoints: decimal.Zero,
	}
	for _, p := range points {
		rst.TotalPoints = rst.TotalPoints.Add(p.Points)
	}
	emission := decimal.NewFromBigInt(new(big.Int).SetUint64(state.Emission), 0)
	for _, p := range points {
		if !p.Points.IsPositive() {
			continue
		}
		// both operands are positive, truncation is floor
		amount, _ := emission.Mul(p.Points).QuoRem(rst.TotalPoints, 0)
		rst.Rewards = append(rst.Rewards, RadioReward{
			RadioID:        p.RadioID,
			RadioType:      p.Radio.RadioType(),
			CoveragePoints: p.Points,
			Amount:         amount.BigInt().Uint64(),
		})
	}
	c.logger.Info("computed rewards",
		zap.Stringer("epoch", epoch),
		zap.Int("heartbeats", len(heartbeats)),
		zap.Int("radios", len(points)),
		zap.Int("rewarded", len(rst.Rewards)),
		zap.Stringer("total_points", rst.TotalPoints),
		zap.Uint64("emission", state.Emission),
		zap.Uint64("distributed", rst.Distributed()),
	)
	return rst, nil
}
