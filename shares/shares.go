package shares

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/coverage"
)

// Reason explains why a report was not accepted.
type Reason uint8

const (
	ReasonBadRadioID Reason = iota + 1
	ReasonBadRadioType
	ReasonOutsideEpoch
	ReasonNotOperational
	ReasonNoCoverage
	ReasonInvalidSignalLevel
	ReasonDuplicateHex
	ReasonBadTrustScore
	ReasonDuplicate
)

func (r Reason) String() string {
	switch r {
	case ReasonBadRadioID:
		return "bad_radio_id"
	case ReasonBadRadioType:
		return "bad_radio_type"
	case ReasonOutsideEpoch:
		return "outside_epoch"
	case ReasonNotOperational:
		return "not_operational"
	case ReasonNoCoverage:
		return "no_coverage"
	case ReasonInvalidSignalLevel:
		return "invalid_signal_level"
	case ReasonDuplicateHex:
		return "duplicate_hex"
	case ReasonBadTrustScore:
		return "bad_trust_score"
	case ReasonDuplicate:
		return "duplicate"
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// InvalidShare is a rejected report.
type InvalidShare struct {
	RadioID   string    `json:"radio_id"`
	Timestamp time.Time `json:"timestamp"`
	Reason    Reason    `json:"reason"`
}

// Shares is the result of validating the reports of an epoch.
type Shares struct {
	Valid   []types.Heartbeat
	Invalid []InvalidShare
}

// Writer persists records.
type Writer interface {
	Write(ctx context.Context, records ...any) (<-chan error, error)
}

var maxTrustScore = decimal.NewFromInt(1)

type key struct {
	radio string
	ts    int64
}

func check(report *types.HeartbeatReport, epoch types.Epoch) (Reason, bool) {
	switch {
	case report.RadioID == "":
		return ReasonBadRadioID, false
	case !report.RadioType.Valid():
		return ReasonBadRadioType, false
	case !epoch.Contains(report.Timestamp):
		return ReasonOutsideEpoch, false
	case !report.OperationMode:
		return ReasonNotOperational, false
	case len(report.Coverage) == 0:
		return ReasonNoCoverage, false
	case report.LocationTrust.TrustScore.IsNegative() ||
		report.LocationTrust.TrustScore.GreaterThan(maxTrustScore):
		return ReasonBadTrustScore, false
	}
	seen := make(map[types.Hex]struct{}, len(report.Coverage))
	for _, hex := range report.Coverage {
		if !coverage.ValidSignalLevel(report.RadioType, hex.SignalLevel) {
			return ReasonInvalidSignalLevel, false
		}
		if _, exists := seen[hex.Hex]; exists {
			return ReasonDuplicateHex, false
		}
		seen[hex.Hex] = struct{}{}
	}
	return 0, true
}

// Validate splits reports into valid heartbeats and invalid shares.
// A report repeating the radio and the timestamp of an accepted report is a duplicate.
func Validate(reports []types.HeartbeatReport, epoch types.Epoch) *Shares {
	shares := &Shares{}
	accepted := map[key]struct{}{}
	for i := range reports {
		report := &reports[i]
		reason, ok := check(report, epoch)
		if ok {
			k := key{radio: report.RadioID, ts: report.Timestamp.UnixMilli()}
			if _, exists := accepted[k]; exists {
				reason, ok = ReasonDuplicate, false
			} else {
				accepted[k] = struct{}{}
			}
		}
		if !ok {
			shares.Invalid = append(shares.Invalid, InvalidShare{
				RadioID:   report.RadioID,
				Timestamp: report.Timestamp,
				Reason:    reason,
			})
			continue
		}
		shares.Valid = append(shares.Valid, types.HeartbeatFromReport(*report))
	}
	return shares
}

// Write hands valid and invalid shares to their writers without waiting for them to be persisted.
func (s *Shares) Write(ctx context.Context, valid, invalid Writer) error {
	if len(s.Valid) > 0 {
		records := make([]any, len(s.Valid))
		for i := range s.Valid {
			records[i] = s.Valid[i]
		}
		if _, err := valid.Write(ctx, records...); err != nil {
			return fmt.Errorf("write valid shares: %w", err)
		}
	}
	if len(s.Invalid) > 0 {
		records := make([]any, len(s.Invalid))
		for i := range s.Invalid {
			records[i] = s.Invalid[i]
		}
		if _, err := invalid.Write(ctx, records...); err != nil {
			return fmt.Errorf("write invalid shares: %w", err)
		}
	}
	return nil
}
