package hexoracle

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/log/logtest"
	"github.com/hexmobile/mobile-verifier/sql"
	"github.com/hexmobile/mobile-verifier/sql/hexes"
)

const document = `{
  "assignments": [
    {"hex": "8c2a1072b59a5ff", "footfall": "A", "landtype": "B", "urbanized": "A"},
    {"hex": "2", "footfall": "C", "landtype": "C", "urbanized": "B"}
  ],
  "boosts": [
    {"hex": "8c2a1072b59a5ff", "multiplier": 4, "start": "2024-06-01T00:00:00Z", "end": "2024-07-01T00:00:00Z"}
  ],
  "verified_radios": [
    {"radio_id": "radio-1", "verified_at": "2024-05-01T00:00:00Z"}
  ]
}`

func writeDocument(tb testing.TB, fs afero.Fs, data string) string {
	tb.Helper()
	path := "/oracle/hexes.json"
	require.NoError(tb, afero.WriteFile(fs, path, []byte(data), 0o600))
	return path
}

func TestImport(t *testing.T) {
	db := sql.InMemory()
	fs := afero.NewMemMapFs()

	doc, err := Import(context.Background(), db, fs, writeDocument(t, fs, document))
	require.NoError(t, err)
	require.Len(t, doc.Assignments, 2)
	require.Len(t, doc.Boosts, 1)
	require.Len(t, doc.VerifiedRadios, 1)

	oracle, err := New(db, WithLogger(logtest.New(t)))
	require.NoError(t, err)

	a, err := oracle.Assignments(0x8c2a1072b59a5ff)
	require.NoError(t, err)
	require.Equal(t, types.Assignments{
		Footfall:  types.AssignmentA,
		Landtype:  types.AssignmentB,
		Urbanized: types.AssignmentA,
	}, a)

	june := types.NewEpoch(
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
	)
	boosts, err := oracle.Boosts(june)
	require.NoError(t, err)
	require.Equal(t, map[types.Hex]uint32{0x8c2a1072b59a5ff: 4}, boosts)

	verified, err := oracle.IsVerified("radio-1", june.End)
	require.NoError(t, err)
	require.True(t, verified)
	verified, err = oracle.IsVerified("radio-2", june.End)
	require.NoError(t, err)
	require.False(t, verified)
}

func TestImportInvalid(t *testing.T) {
	for _, tc := range []struct {
		desc string
		data string
	}{
		{"not json", `{"assignments": [`},
		{"bad hex", `{"assignments": [{"hex": "xyz", "footfall": "A", "landtype": "A", "urbanized": "A"}]}`},
		{"bad assignment", `{"assignments": [{"hex": "1", "footfall": "D", "landtype": "A", "urbanized": "A"}]}`},
		{"missing axis", `{"assignments": [{"hex": "1", "footfall": "A", "landtype": "A"}]}`},
		{"zero boost", `{"boosts": [{"hex": "1", "multiplier": 0, "start": "2024-06-01T00:00:00Z", "end": "2024-07-01T00:00:00Z"}]}`},
		{"bad time", `{"boosts": [{"hex": "1", "multiplier": 2, "start": "yesterday", "end": "2024-07-01T00:00:00Z"}]}`},
		{"inverted boost", `{"boosts": [{"hex": "1", "multiplier": 2, "start": "2024-07-01T00:00:00Z", "end": "2024-06-01T00:00:00Z"}]}`},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			db := sql.InMemory()
			fs := afero.NewMemMapFs()
			_, err := Import(context.Background(), db, fs, writeDocument(t, fs, tc.data))
			require.Error(t, err)

			count, err := hexes.CountAssignments(db)
			require.NoError(t, err)
			require.Zero(t, count)
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(context.Background(), sql.InMemory(), afero.NewMemMapFs(), "/missing.json")
	require.Error(t, err)
}

func TestUnclassifiedHexIsOutsideTerritory(t *testing.T) {
	oracle, err := New(sql.InMemory())
	require.NoError(t, err)
	a, err := oracle.Assignments(42)
	require.NoError(t, err)
	require.Equal(t, types.OutsideTerritory, a)
}

func TestAssignmentsCached(t *testing.T) {
	db := sql.InMemory()
	oracle, err := New(db, WithCacheSize(10))
	require.NoError(t, err)

	first := types.Assignments{Footfall: types.AssignmentA, Landtype: types.AssignmentA, Urbanized: types.AssignmentA}
	require.NoError(t, hexes.SetAssignments(db, 7, first))
	a, err := oracle.Assignments(7)
	require.NoError(t, err)
	require.Equal(t, first, a)

	second := types.Assignments{Footfall: types.AssignmentB, Landtype: types.AssignmentA, Urbanized: types.AssignmentB}
	require.NoError(t, hexes.SetAssignments(db, 7, second))
	a, err = oracle.Assignments(7)
	require.NoError(t, err)
	require.Equal(t, first, a)

	oracle.Purge()
	a, err = oracle.Assignments(7)
	require.NoError(t, err)
	require.Equal(t, second, a)
}
