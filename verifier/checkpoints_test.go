package verifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hexmobile/mobile-verifier/sql"
	"github.com/hexmobile/mobile-verifier/sql/kvstore"
)

func TestLoadCheckpoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartAfter = t0.Add(500 * time.Millisecond)

	t.Run("fresh database", func(t *testing.T) {
		db := sql.InMemory()
		_, err := ReadCheckpoints(db)
		require.ErrorIs(t, err, sql.ErrNotFound)

		cp, err := loadCheckpoints(context.Background(), db, cfg)
		require.NoError(t, err)
		expected := Checkpoints{LastVerified: t0, LastRewarded: t0, NextRewarded: t0.Add(cfg.RewardPeriod)}
		require.Equal(t, expected, cp)

		persisted, err := ReadCheckpoints(db)
		require.NoError(t, err)
		require.Equal(t, expected, persisted)
	})
	t.Run("persisted checkpoints win", func(t *testing.T) {
		db := sql.InMemory()
		_, err := loadCheckpoints(context.Background(), db, cfg)
		require.NoError(t, err)

		other := cfg
		other.StartAfter = t0.Add(time.Hour)
		other.RewardPeriod = time.Hour
		cp, err := loadCheckpoints(context.Background(), db, other)
		require.NoError(t, err)
		require.Equal(t, t0, cp.LastVerified)
		require.Equal(t, t0.Add(cfg.RewardPeriod), cp.NextRewarded)
	})
	t.Run("partially initialized", func(t *testing.T) {
		db := sql.InMemory()
		require.NoError(t, kvstore.SetTime(db, lastVerifiedKey, t0.Add(6*time.Hour)))

		cp, err := loadCheckpoints(context.Background(), db, cfg)
		require.NoError(t, err)
		require.Equal(t, Checkpoints{
			LastVerified: t0.Add(6 * time.Hour),
			LastRewarded: t0,
			NextRewarded: t0.Add(cfg.RewardPeriod),
		}, cp)
	})
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	for _, tc := range []struct {
		desc string
		cfg  Config
	}{
		{"zero period", Config{VerificationsPerPeriod: 1}},
		{"fractional period", Config{RewardPeriod: 1500 * time.Millisecond, VerificationsPerPeriod: 1}},
		{"zero verifications", Config{RewardPeriod: time.Hour}},
		{"fractional verification", Config{RewardPeriod: time.Minute, VerificationsPerPeriod: 7}},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			require.Error(t, tc.cfg.Validate())
		})
	}
	cfg := Config{RewardPeriod: 24 * time.Hour, VerificationsPerPeriod: 4}
	require.NoError(t, cfg.Validate())
	require.Equal(t, 6*time.Hour, cfg.VerificationPeriod())
}
