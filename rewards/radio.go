package rewards

import (
	"cmp"
	"slices"
	"time"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/coverage"
)

type observation struct {
	level     types.SignalLevel
	firstSeen time.Time
}

// radio aggregates heartbeats of a single radio in the epoch.
type radio struct {
	id         string
	radioType  types.RadioType
	speedtests []types.Speedtest
	trust      []types.LocationTrust
	verified   bool
	hexes      map[types.Hex]observation
}

var _ coverage.Radio = (*radio)(nil)

func (r *radio) RadioType() types.RadioType {
	return r.radioType
}

func (r *radio) Speedtests() []types.Speedtest {
	return r.speedtests
}

func (r *radio) LocationTrustScores() []types.LocationTrust {
	return r.trust
}

func (r *radio) VerifiedRadioThreshold() bool {
	return r.verified
}

func (r *radio) add(hb *types.Heartbeat) {
	r.trust = append(r.trust, hb.LocationTrust)
	if hb.Speedtest != nil && !slices.ContainsFunc(r.speedtests, func(st types.Speedtest) bool {
		return st.Timestamp.Equal(hb.Speedtest.Timestamp)
	}) {
		r.speedtests = append(r.speedtests, *hb.Speedtest)
	}
	for _, cov := range hb.Coverage {
		obs, exists := r.hexes[cov.Hex]
		if !exists {
			r.hexes[cov.Hex] = observation{level: cov.SignalLevel, firstSeen: hb.Timestamp}
			continue
		}
		if cov.SignalLevel > obs.level {
			obs.level = cov.SignalLevel
		}
		if hb.Timestamp.Before(obs.firstSeen) {
			obs.firstSeen = hb.Timestamp
		}
		r.hexes[cov.Hex] = obs
	}
}

// radios groups heartbeats by radio and returns radios ordered by id.
// Heartbeats that disagree with the first seen type of their radio are returned separately.
func radios(heartbeats []types.Heartbeat) ([]*radio, []types.Heartbeat) {
	byID := map[string]*radio{}
	var conflicting []types.Heartbeat
	for i := range heartbeats {
		hb := &heartbeats[i]
		r, exists := byID[hb.RadioID]
		if !exists {
			r = &radio{
				id:        hb.RadioID,
				radioType: hb.RadioType,
				hexes:     map[types.Hex]observation{},
			}
			byID[hb.RadioID] = r
		}
		if r.radioType != hb.RadioType {
			conflicting = append(conflicting, *hb)
			continue
		}
		r.add(hb)
	}
	rst := make([]*radio, 0, len(byID))
	for _, r := range byID {
		rst = append(rst, r)
	}
	slices.SortFunc(rst, func(a, b *radio) int {
		return cmp.Compare(a.id, b.id)
	})
	return rst, conflicting
}
