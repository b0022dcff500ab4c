package types

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Hex is an index of a cell in the hexagonal tessellation.
// Its text form is the lowercase hexadecimal representation of the index.
type Hex uint64

func (h Hex) String() string {
	return strconv.FormatUint(uint64(h), 16)
}

func (h Hex) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hex) UnmarshalText(data []byte) error {
	v, err := strconv.ParseUint(string(data), 16, 64)
	if err != nil {
		return fmt.Errorf("parse hex %q: %w", data, err)
	}
	*h = Hex(v)
	return nil
}

// Assignment is the value of one of the land classification axes of a hex.
type Assignment uint8

const (
	AssignmentA Assignment = iota + 1
	AssignmentB
	AssignmentC
)

// AssignmentValues lists every assignment value.
var AssignmentValues = []Assignment{AssignmentA, AssignmentB, AssignmentC}

func (a Assignment) Valid() bool {
	return a >= AssignmentA && a <= AssignmentC
}

func (a Assignment) String() string {
	switch a {
	case AssignmentA:
		return "A"
	case AssignmentB:
		return "B"
	case AssignmentC:
		return "C"
	}
	return fmt.Sprintf("assignment(%d)", uint8(a))
}

func (a Assignment) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown assignment %d", uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *Assignment) UnmarshalText(data []byte) error {
	for _, v := range AssignmentValues {
		if v.String() == string(data) {
			*a = v
			return nil
		}
	}
	return fmt.Errorf("unknown assignment %q", data)
}

// Assignments is the land classification of a hex.
type Assignments struct {
	Footfall  Assignment `json:"footfall"`
	Landtype  Assignment `json:"landtype"`
	Urbanized Assignment `json:"urbanized"`
}

// Valid returns true if every axis holds a known value.
func (a Assignments) Valid() bool {
	return a.Footfall.Valid() && a.Landtype.Valid() && a.Urbanized.Valid()
}

func (a Assignments) String() string {
	return a.Footfall.String() + a.Landtype.String() + a.Urbanized.String()
}

// OutsideTerritory is the classification of a hex that is not serviceable.
var OutsideTerritory = Assignments{
	Footfall:  AssignmentC,
	Landtype:  AssignmentC,
	Urbanized: AssignmentC,
}

// CoveredHex is a hex covered by a radio during an epoch.
type CoveredHex struct {
	Hex         Hex
	Rank        uint16
	SignalLevel SignalLevel
	Assignments Assignments
	// Boosted is nil unless the hex was marked by the boosting oracle.
	Boosted *uint32
}

// LocationTrust is a single location trust sample of a radio.
type LocationTrust struct {
	// DistanceToAsserted is measured in meters.
	DistanceToAsserted uint64          `json:"distance_to_asserted"`
	TrustScore         decimal.Decimal `json:"trust_score"`
}
