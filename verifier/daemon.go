// Package verifier runs the epoch scheduler.
//
// The scheduler alternates between verification passes, which validate and persist heartbeats
// received since the last verification, and reward passes, which pay out a fixed width reward
// epoch from the persisted heartbeats. Three checkpoints persisted together with the data of every
// pass let a restarted scheduler resume where the previous one stopped. Running two schedulers
// against the same database is not safe.
package verifier

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/sql"
	"github.com/hexmobile/mobile-verifier/sql/heartbeats"
	"github.com/hexmobile/mobile-verifier/sql/kvstore"
)

type Opt func(*Daemon)

func WithLogger(logger *zap.Logger) Opt {
	return func(d *Daemon) {
		d.logger = logger
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(d *Daemon) {
		d.clock = clock
	}
}

// Sinks receive the output of the passes.
type Sinks struct {
	ValidShares   Writer
	InvalidShares Writer
	Rewards       Writer
}

type Daemon struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	db       *sql.Database
	cfg      Config
	verifier epochVerifier
	sinks    Sinks

	// mirrors persisted checkpoints, updated only after a pass is committed
	checkpoints Checkpoints
}

// NewDaemon loads checkpoints from the database. Missing checkpoints are initialized from
// the configured start.
func NewDaemon(
	ctx context.Context,
	db *sql.Database,
	cfg Config,
	verifier epochVerifier,
	sinks Sinks,
	opts ...Opt,
) (*Daemon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	d := &Daemon{
		logger:   zap.NewNop(),
		clock:    clockwork.NewRealClock(),
		db:       db,
		cfg:      cfg,
		verifier: verifier,
		sinks:    sinks,
	}
	for _, opt := range opts {
		opt(d)
	}
	cp, err := loadCheckpoints(ctx, db, cfg)
	if err != nil {
		return nil, err
	}
	d.checkpoints = cp
	reportCheckpoints(cp)
	return d, nil
}

// Checkpoints returns the checkpoints of the last committed passes.
func (d *Daemon) Checkpoints() Checkpoints {
	return d.checkpoints
}

// Run the scheduler until ctx is canceled or a pass fails.
// A pass that started is never interrupted by cancellation.
func (d *Daemon) Run(ctx context.Context) error {
	vp := d.cfg.VerificationPeriod()
	d.logger.Info("starting verifier",
		zap.Duration("reward_period", d.cfg.RewardPeriod),
		zap.Duration("verification_period", vp),
		zap.Inline(d.checkpoints),
	)
	for {
		if ctx.Err() != nil {
			d.logger.Info("verifier stopped")
			return nil
		}
		act, err := plan(d.clock.Now(), d.checkpoints, vp)
		if err != nil {
			return err
		}
		passCtx := context.WithoutCancel(ctx)
		if act.verify != nil {
			if err := d.VerifyEpoch(passCtx, *act.verify); err != nil {
				return err
			}
		}
		if act.reward != nil {
			if err := d.RewardEpoch(passCtx, *act.reward); err != nil {
				return err
			}
		}
		if ctx.Err() != nil {
			d.logger.Info("verifier stopped")
			return nil
		}
		d.logger.Info("sleeping", zap.Duration("duration", act.sleep))
		select {
		case <-ctx.Done():
			d.logger.Info("verifier stopped")
			return nil
		case <-d.clock.After(act.sleep):
		}
	}
}

// VerifyEpoch validates reports of the epoch and persists valid heartbeats together with
// the last verified checkpoint. Shares are written only after the commit.
func (d *Daemon) VerifyEpoch(ctx context.Context, epoch types.Epoch) error {
	start := time.Now()
	d.logger.Info("verifying epoch", zap.Stringer("epoch", epoch))
	shares, err := d.verifier.VerifyEpoch(ctx, epoch)
	if err != nil {
		return fmt.Errorf("verify %s: %w", epoch, err)
	}
	end := truncate(epoch.End)
	if err := d.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i := range shares.Valid {
			if err := heartbeats.Add(tx, &shares.Valid[i]); err != nil {
				return err
			}
		}
		return kvstore.SetTime(tx, lastVerifiedKey, end)
	}); err != nil {
		return fmt.Errorf("persist verified %s: %w", epoch, err)
	}
	d.checkpoints.LastVerified = end
	reportCheckpoints(d.checkpoints)
	validShares.Add(float64(len(shares.Valid)))
	invalidShares.Add(float64(len(shares.Invalid)))

	if err := shares.Write(ctx, d.sinks.ValidShares, d.sinks.InvalidShares); err != nil {
		return err
	}
	verifyDuration.Observe(time.Since(start).Seconds())
	d.logger.Info("verified epoch",
		zap.Stringer("epoch", epoch),
		zap.Int("valid", len(shares.Valid)),
		zap.Int("invalid", len(shares.Invalid)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// RewardEpoch computes rewards from heartbeats validated since the start of the epoch, then clears
// heartbeats and advances reward checkpoints in one transaction. It returns after rewards are
// durably written.
//
// A crash after the commit and before the write is confirmed advances checkpoints without
// a persisted rewards file.
func (d *Daemon) RewardEpoch(ctx context.Context, epoch types.Epoch) error {
	start := time.Now()
	d.logger.Info("rewarding epoch", zap.Stringer("epoch", epoch))
	hbs, err := heartbeats.ValidatedSince(d.db, epoch.Start)
	if err != nil {
		return err
	}
	rewards, err := d.verifier.RewardEpoch(ctx, epoch, hbs)
	if err != nil {
		return fmt.Errorf("reward %s: %w", epoch, err)
	}
	last := truncate(epoch.End)
	next := last.Add(d.cfg.RewardPeriod)
	if err := d.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := heartbeats.Truncate(tx); err != nil {
			return err
		}
		if err := kvstore.SetTime(tx, lastRewardedKey, last); err != nil {
			return err
		}
		return kvstore.SetTime(tx, nextRewardedKey, next)
	}); err != nil {
		return fmt.Errorf("persist rewarded %s: %w", epoch, err)
	}
	d.checkpoints.LastRewarded = last
	d.checkpoints.NextRewarded = next
	reportCheckpoints(d.checkpoints)

	ack, err := rewards.Write(ctx, d.sinks.Rewards)
	if err != nil {
		return err
	}
	if err := <-ack; err != nil {
		return fmt.Errorf("persist rewards for %s: %w", epoch, err)
	}
	distributed.Add(float64(rewards.Distributed()))
	rewardDuration.Observe(time.Since(start).Seconds())
	d.logger.Info("rewarded epoch",
		zap.Stringer("epoch", epoch),
		zap.Int("heartbeats", len(hbs)),
		zap.Int("radios", len(rewards.Rewards)),
		zap.Uint64("chain_height", rewards.ChainHeight),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
