package types

import "time"

// BytesPerSecond is a network throughput.
type BytesPerSecond uint64

// Mbps converts megabits per second to BytesPerSecond.
func Mbps(mbps uint64) BytesPerSecond {
	return BytesPerSecond(mbps * 125_000)
}

// Speedtest is a single network speed sample reported by a radio.
type Speedtest struct {
	Timestamp     time.Time      `json:"timestamp"`
	UploadSpeed   BytesPerSecond `json:"upload_speed"`
	DownloadSpeed BytesPerSecond `json:"download_speed"`
	// Latency in milliseconds.
	Latency uint32 `json:"latency"`
}
