package types

import (
	"time"
)

// HexSignal is a hex observed by a radio with a given signal level.
type HexSignal struct {
	Hex         Hex         `json:"hex"`
	SignalLevel SignalLevel `json:"signal_level"`
}

// HeartbeatReport is a raw periodic report submitted by a radio, as ingested.
type HeartbeatReport struct {
	RadioID       string        `json:"radio_id"`
	RadioType     RadioType     `json:"radio_type"`
	Timestamp     time.Time     `json:"timestamp"`
	OperationMode bool          `json:"operation_mode"`
	LocationTrust LocationTrust `json:"location_trust"`
	Speedtest     *Speedtest    `json:"speedtest,omitempty"`
	Coverage      []HexSignal   `json:"coverage"`
}

// Heartbeat is a validated proof of coverage report of a radio.
type Heartbeat struct {
	RadioID       string        `json:"radio_id"`
	RadioType     RadioType     `json:"radio_type"`
	Timestamp     time.Time     `json:"timestamp"`
	LocationTrust LocationTrust `json:"location_trust"`
	Speedtest     *Speedtest    `json:"speedtest,omitempty"`
	Coverage      []HexSignal   `json:"coverage"`
}

// HeartbeatFromReport converts an accepted report to a heartbeat.
func HeartbeatFromReport(report HeartbeatReport) Heartbeat {
	return Heartbeat{
		RadioID:       report.RadioID,
		RadioType:     report.RadioType,
		Timestamp:     report.Timestamp,
		LocationTrust: report.LocationTrust,
		Speedtest:     report.Speedtest,
		Coverage:      report.Coverage,
	}
}
