package types

import (
	"fmt"
)

// RadioType is the physical category of a radio.
type RadioType uint8

const (
	IndoorWifi RadioType = iota + 1
	OutdoorWifi
	IndoorCbrs
	OutdoorCbrs
)

// RadioTypes lists every known radio type.
var RadioTypes = []RadioType{IndoorWifi, OutdoorWifi, IndoorCbrs, OutdoorCbrs}

// IsIndoor returns true for indoor radios. Indoor radios only ever observe High or Low signal.
func (r RadioType) IsIndoor() bool {
	return r == IndoorWifi || r == IndoorCbrs
}

// IsCbrs returns true for cbrs radios.
func (r RadioType) IsCbrs() bool {
	return r == IndoorCbrs || r == OutdoorCbrs
}

// Valid returns true if r is one of the known radio types.
func (r RadioType) Valid() bool {
	return r >= IndoorWifi && r <= OutdoorCbrs
}

func (r RadioType) String() string {
	switch r {
	case IndoorWifi:
		return "indoor_wifi"
	case OutdoorWifi:
		return "outdoor_wifi"
	case IndoorCbrs:
		return "indoor_cbrs"
	case OutdoorCbrs:
		return "outdoor_cbrs"
	}
	return fmt.Sprintf("radio_type(%d)", uint8(r))
}

func (r RadioType) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown radio type %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *RadioType) UnmarshalText(data []byte) error {
	for _, rt := range RadioTypes {
		if rt.String() == string(data) {
			*r = rt
			return nil
		}
	}
	return fmt.Errorf("unknown radio type %q", data)
}

// SignalLevel is the observed coverage strength of a radio in a hex.
type SignalLevel uint8

const (
	SignalNone SignalLevel = iota
	SignalLow
	SignalMedium
	SignalHigh
)

// SignalLevels lists every signal level from the strongest to the weakest.
var SignalLevels = []SignalLevel{SignalHigh, SignalMedium, SignalLow, SignalNone}

func (s SignalLevel) Valid() bool {
	return s <= SignalHigh
}

func (s SignalLevel) String() string {
	switch s {
	case SignalHigh:
		return "high"
	case SignalMedium:
		return "medium"
	case SignalLow:
		return "low"
	case SignalNone:
		return "none"
	}
	return fmt.Sprintf("signal_level(%d)", uint8(s))
}

func (s SignalLevel) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown signal level %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *SignalLevel) UnmarshalText(data []byte) error {
	for _, level := range SignalLevels {
		if level.String() == string(data) {
			*s = level
			return nil
		}
	}
	return fmt.Errorf("unknown signal level %q", data)
}
