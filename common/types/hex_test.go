package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexText(t *testing.T) {
	var hex Hex
	require.NoError(t, hex.UnmarshalText([]byte("8c2a1072b59a5ff")))
	require.Equal(t, Hex(0x8c2a1072b59a5ff), hex)
	require.Equal(t, "8c2a1072b59a5ff", hex.String())

	require.Error(t, hex.UnmarshalText([]byte("xyz")))
	require.Error(t, hex.UnmarshalText([]byte("1ffffffffffffffff")))
}

func TestAssignmentsJSON(t *testing.T) {
	var a Assignments
	require.NoError(t, json.Unmarshal([]byte(`{"footfall":"A","landtype":"B","urbanized":"C"}`), &a))
	require.Equal(t, "ABC", a.String())
	require.True(t, a.Valid())

	require.Error(t, json.Unmarshal([]byte(`{"footfall":"D"}`), &a))
	require.False(t, Assignments{Footfall: AssignmentA}.Valid())
	_, err := json.Marshal(Assignments{})
	require.Error(t, err)
}

func TestRadioTypeText(t *testing.T) {
	for _, rt := range RadioTypes {
		data, err := rt.MarshalText()
		require.NoError(t, err)
		var decoded RadioType
		require.NoError(t, decoded.UnmarshalText(data))
		require.Equal(t, rt, decoded)
	}
	require.True(t, IndoorCbrs.IsIndoor())
	require.True(t, IndoorCbrs.IsCbrs())
	require.False(t, OutdoorWifi.IsIndoor())

	var level SignalLevel
	require.Error(t, level.UnmarshalText([]byte("extreme")))
	_, err := RadioType(9).MarshalText()
	require.Error(t, err)
}
