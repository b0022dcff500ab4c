package verifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/hexmobile/mobile-verifier/sql"
	"github.com/hexmobile/mobile-verifier/sql/kvstore"
)

const (
	lastVerifiedKey = "last_verified_end_time"
	lastRewardedKey = "last_rewarded_end_time"
	nextRewardedKey = "next_rewarded_end_time"
)

// Checkpoints is the durable cursor of the scheduler.
type Checkpoints struct {
	LastVerified time.Time
	LastRewarded time.Time
	NextRewarded time.Time
}

func (c Checkpoints) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddTime("last_verified", c.LastVerified)
	encoder.AddTime("last_rewarded", c.LastRewarded)
	encoder.AddTime("next_rewarded", c.NextRewarded)
	return nil
}

// checkpoints are persisted with a second resolution.
func truncate(t time.Time) time.Time {
	return time.Unix(t.Unix(), 0).UTC()
}

// ReadCheckpoints returns persisted checkpoints or sql.ErrNotFound if any of them is missing.
func ReadCheckpoints(db sql.Executor) (Checkpoints, error) {
	var (
		cp  Checkpoints
		err error
	)
	if cp.LastVerified, err = kvstore.GetTime(db, lastVerifiedKey); err != nil {
		return Checkpoints{}, err
	}
	if cp.LastRewarded, err = kvstore.GetTime(db, lastRewardedKey); err != nil {
		return Checkpoints{}, err
	}
	if cp.NextRewarded, err = kvstore.GetTime(db, nextRewardedKey); err != nil {
		return Checkpoints{}, err
	}
	return cp, nil
}

// loadCheckpoints reads checkpoints and initializes missing ones in the same transaction.
func loadCheckpoints(ctx context.Context, db *sql.Database, cfg Config) (cp Checkpoints, err error) {
	start := truncate(cfg.StartAfter)
	defaults := []struct {
		key   string
		value time.Time
		dst   *time.Time
	}{
		{lastVerifiedKey, start, &cp.LastVerified},
		{lastRewardedKey, start, &cp.LastRewarded},
		{nextRewardedKey, start.Add(cfg.RewardPeriod), &cp.NextRewarded},
	}
	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, d := range defaults {
			value, err := kvstore.GetTime(tx, d.key)
			switch {
			case errors.Is(err, sql.ErrNotFound):
				if err := kvstore.SetTime(tx, d.key, d.value); err != nil {
					return err
				}
				value = d.value
			case err != nil:
				return err
			}
			*d.dst = value
		}
		return nil
	})
	if err != nil {
		return Checkpoints{}, fmt.Errorf("load checkpoints: %w", err)
	}
	return cp, nil
}
