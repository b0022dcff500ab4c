package rewards

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/coverage"
)

type rankKey struct {
	hex    types.Hex
	radio  string
	indoor bool
}

// coverageMap ranks radios covering the same hex. Indoor and outdoor radios are ranked
// separately: by signal level, then by the time the hex was first seen, then by radio id.
type coverageMap struct {
	ranks       map[rankKey]uint16
	assignments map[types.Hex]types.Assignments
	boosts      map[types.Hex]uint32
}

var _ coverage.CoverageMap = (*coverageMap)(nil)

type contender struct {
	radio string
	obs   observation
}

func compareContenders(a, b contender) int {
	if c := cmp.Compare(b.obs.level, a.obs.level); c != 0 {
		return c
	}
	if c := a.obs.firstSeen.Compare(b.obs.firstSeen); c != 0 {
		return c
	}
	return cmp.Compare(a.radio, b.radio)
}

func newCoverageMap(radios []*radio, oracle HexOracle, boosts map[types.Hex]uint32) (*coverageMap, error) {
	type classKey struct {
		hex    types.Hex
		indoor bool
	}
	contenders := map[classKey][]contender{}
	m := &coverageMap{
		ranks:       map[rankKey]uint16{},
		assignments: map[types.Hex]types.Assignments{},
		boosts:      boosts,
	}
	for _, r := range radios {
		indoor := r.radioType.IsIndoor()
		for hex, obs := range r.hexes {
			key := classKey{hex: hex, indoor: indoor}
			contenders[key] = append(contenders[key], contender{radio: r.id, obs: obs})
			if _, exists := m.assignments[hex]; exists {
				continue
			}
			a, err := oracle.Assignments(hex)
			if err != nil {
				return nil, fmt.Errorf("assignments of %s: %w", hex, err)
			}
			m.assignments[hex] = a
		}
	}
	for key, list := range contenders {
		slices.SortFunc(list, compareContenders)
		for i, c := range list {
			rank := i + 1
			if rank > int(^uint16(0)) {
				rank = int(^uint16(0))
			}
			m.ranks[rankKey{hex: key.hex, radio: c.radio, indoor: key.indoor}] = uint16(rank)
		}
	}
	return m, nil
}

// Hexes returns hexes covered by the radio ordered by hex.
func (m *coverageMap) Hexes(r coverage.Radio) []types.CoveredHex {
	rd, ok := r.(*radio)
	if !ok {
		return nil
	}
	indoor := rd.radioType.IsIndoor()
	rst := make([]types.CoveredHex, 0, len(rd.hexes))
	for hex, obs := range rd.hexes {
		covered := types.CoveredHex{
			Hex:         hex,
			Rank:        m.ranks[rankKey{hex: hex, radio: rd.id, indoor: indoor}],
			SignalLevel: obs.level,
			Assignments: m.assignments[hex],
		}
		if boost, exists := m.boosts[hex]; exists {
			covered.Boosted = &boost
		}
		rst = append(rst, covered)
	}
	slices.SortFunc(rst, func(a, b types.CoveredHex) int {
		return cmp.Compare(a.Hex, b.Hex)
	})
	return rst
}
