package verifier

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hexmobile/mobile-verifier/metrics"
)

const subsystem = "daemon"

var (
	passDuration = metrics.NewHistogramWithBuckets(
		"pass_duration_seconds",
		subsystem,
		"duration of verification and reward passes",
		[]string{"pass"},
		prometheus.ExponentialBuckets(0.01, 2, 16),
	)
	verifyDuration = passDuration.WithLabelValues("verify")
	rewardDuration = passDuration.WithLabelValues("reward")

	checkpoint = metrics.NewGauge(
		"checkpoint_seconds",
		subsystem,
		"checkpoint as unix time",
		[]string{"checkpoint"},
	)
	lastVerifiedGauge = checkpoint.WithLabelValues(lastVerifiedKey)
	lastRewardedGauge = checkpoint.WithLabelValues(lastRewardedKey)
	nextRewardedGauge = checkpoint.WithLabelValues(nextRewardedKey)

	shareCount = metrics.NewCounter(
		"shares_total",
		subsystem,
		"number of validated heartbeat reports",
		[]string{"kind"},
	)
	validShares   = shareCount.WithLabelValues("valid")
	invalidShares = shareCount.WithLabelValues("invalid")

	distributed = metrics.NewCounter(
		"distributed_total",
		subsystem,
		"amount of tokens distributed in rewards",
		[]string{},
	).WithLabelValues()
)

func reportCheckpoints(cp Checkpoints) {
	metrics.SetTimestamp(lastVerifiedGauge, cp.LastVerified)
	metrics.SetTimestamp(lastRewardedGauge, cp.LastRewarded)
	metrics.SetTimestamp(nextRewardedGauge, cp.NextRewarded)
}
