// Package speedtest averages radio speed test samples and maps them to reward tiers.
package speedtest

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hexmobile/mobile-verifier/common/types"
)

// MinRequiredSamples is the number of samples a radio needs before its speed tests
// are graded above Fail.
const MinRequiredSamples = 2

// Tier is a speed test quality grade.
type Tier uint8

const (
	Fail Tier = iota
	Poor
	Degraded
	Acceptable
	Good
)

func (t Tier) String() string {
	switch t {
	case Fail:
		return "fail"
	case Poor:
		return "poor"
	case Degraded:
		return "degraded"
	case Acceptable:
		return "acceptable"
	case Good:
		return "good"
	}
	return fmt.Sprintf("tier(%d)", uint8(t))
}

// Multiplier applied to coverage points for the tier.
func (t Tier) Multiplier() decimal.Decimal {
	switch t {
	case Good:
		return decimal.New(100, -2)
	case Acceptable:
		return decimal.New(75, -2)
	case Degraded:
		return decimal.New(50, -2)
	case Poor:
		return decimal.New(25, -2)
	}
	return decimal.Zero
}

func uploadTier(speed types.BytesPerSecond) Tier {
	switch {
	case speed >= types.Mbps(10):
		return Good
	case speed >= types.Mbps(8):
		return Acceptable
	case speed >= types.Mbps(5):
		return Degraded
	case speed >= types.Mbps(2):
		return Poor
	}
	return Fail
}

func downloadTier(speed types.BytesPerSecond) Tier {
	switch {
	case speed >= types.Mbps(100):
		return Good
	case speed >= types.Mbps(75):
		return Acceptable
	case speed >= types.Mbps(50):
		return Degraded
	case speed >= types.Mbps(30):
		return Poor
	}
	return Fail
}

func latencyTier(ms uint32) Tier {
	switch {
	case ms <= 50:
		return Good
	case ms <= 60:
		return Acceptable
	case ms <= 75:
		return Degraded
	case ms <= 100:
		return Poor
	}
	return Fail
}

// TierOf grades a sample by its weakest metric.
func TierOf(sample types.Speedtest) Tier {
	return min(uploadTier(sample.UploadSpeed), downloadTier(sample.DownloadSpeed), latencyTier(sample.Latency))
}

// Average returns the mean of every metric over the samples.
// The timestamp of the average is the timestamp of the latest sample.
func Average(samples []types.Speedtest) types.Speedtest {
	if len(samples) == 0 {
		return types.Speedtest{}
	}
	var (
		upload, download, latency uint64
		avg                       types.Speedtest
	)
	for _, sample := range samples {
		upload += uint64(sample.UploadSpeed)
		download += uint64(sample.DownloadSpeed)
		latency += uint64(sample.Latency)
		if sample.Timestamp.After(avg.Timestamp) {
			avg.Timestamp = sample.Timestamp
		}
	}
	n := uint64(len(samples))
	avg.UploadSpeed = types.BytesPerSecond(upload / n)
	avg.DownloadSpeed = types.BytesPerSecond(download / n)
	avg.Latency = uint32(latency / n)
	return avg
}

// TierFor grades a set of samples. Radios with less than MinRequiredSamples always Fail.
func TierFor(samples []types.Speedtest) Tier {
	if len(samples) < MinRequiredSamples {
		return Fail
	}
	return TierOf(Average(samples))
}

// MultiplierFor is a shortcut for TierFor(samples).Multiplier().
func MultiplierFor(samples []types.Speedtest) decimal.Decimal {
	return TierFor(samples).Multiplier()
}
