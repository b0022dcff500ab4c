package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEpochIsHalfOpen(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	epoch := NewEpoch(start, start.Add(time.Hour))

	require.True(t, epoch.Contains(start))
	require.True(t, epoch.Contains(start.Add(time.Hour-time.Nanosecond)))
	require.False(t, epoch.Contains(start.Add(time.Hour)))
	require.False(t, epoch.Contains(start.Add(-time.Nanosecond)))
	require.Equal(t, time.Hour, epoch.Duration())
	require.False(t, epoch.Empty())
	require.True(t, NewEpoch(start, start).Empty())
	require.Equal(t, "[2024-06-01T00:00:00Z, 2024-06-01T01:00:00Z)", epoch.String())
}
