// Package hexes stores the oracle data used to score covered hexes: land classification
// assignments, boosted hexes and the radios that passed the verified threshold.
package hexes

import (
	"fmt"
	"time"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/sql"
)

// Boost marks hex as boosted by Multiplier during [Start, End).
type Boost struct {
	Hex        types.Hex
	Multiplier uint32
	Start      time.Time
	End        time.Time
}

// SetAssignments inserts or replaces assignments of the hex.
func SetAssignments(db sql.Executor, hex types.Hex, a types.Assignments) error {
	if _, err := db.Exec(`insert into hex_assignments (hex, footfall, landtype, urbanized)
			values (?1, ?2, ?3, ?4)
		on conflict (hex) do update set
			footfall = excluded.footfall, landtype = excluded.landtype, urbanized = excluded.urbanized;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(hex))
			stmt.BindInt64(2, int64(a.Footfall))
			stmt.BindInt64(3, int64(a.Landtype))
			stmt.BindInt64(4, int64(a.Urbanized))
		}, nil); err != nil {
		return fmt.Errorf("set assignments of %s: %w", hex, err)
	}
	return nil
}

// Assignments returns assignments of the hex or sql.ErrNotFound.
func Assignments(db sql.Executor, hex types.Hex) (a types.Assignments, err error) {
	rows, err := db.Exec(`select footfall, landtype, urbanized from hex_assignments where hex = ?1;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(hex))
		}, func(stmt *sql.Statement) bool {
			a.Footfall = types.Assignment(stmt.ColumnInt64(0))
			a.Landtype = types.Assignment(stmt.ColumnInt64(1))
			a.Urbanized = types.Assignment(stmt.ColumnInt64(2))
			return false
		})
	if err != nil {
		return a, fmt.Errorf("get assignments of %s: %w", hex, err)
	}
	if rows == 0 {
		return a, fmt.Errorf("get assignments of %s: %w", hex, sql.ErrNotFound)
	}
	return a, nil
}

// CountAssignments returns the number of classified hexes.
func CountAssignments(db sql.Executor) (int, error) {
	var count int
	if _, err := db.Exec("select count(*) from hex_assignments;", nil, func(stmt *sql.Statement) bool {
		count = stmt.ColumnInt(0)
		return true
	}); err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return count, nil
}

// AddBoost inserts or replaces the boost of a hex.
func AddBoost(db sql.Executor, b Boost) error {
	if _, err := db.Exec(`insert into boosted_hexes (hex, multiplier, start_time, end_time)
			values (?1, ?2, ?3, ?4)
		on conflict (hex) do update set
			multiplier = excluded.multiplier, start_time = excluded.start_time, end_time = excluded.end_time;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(b.Hex))
			stmt.BindInt64(2, int64(b.Multiplier))
			stmt.BindInt64(3, b.Start.Unix())
			stmt.BindInt64(4, b.End.Unix())
		}, nil); err != nil {
		return fmt.Errorf("add boost for %s: %w", b.Hex, err)
	}
	return nil
}

// ActiveBoosts returns boost multipliers of hexes whose boost window overlaps the epoch.
func ActiveBoosts(db sql.Executor, epoch types.Epoch) (map[types.Hex]uint32, error) {
	rst := map[types.Hex]uint32{}
	if _, err := db.Exec(`select hex, multiplier from boosted_hexes
		where start_time < ?2 and end_time > ?1;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, epoch.Start.Unix())
			stmt.BindInt64(2, epoch.End.Unix())
		}, func(stmt *sql.Statement) bool {
			rst[types.Hex(stmt.ColumnInt64(0))] = uint32(stmt.ColumnInt64(1))
			return true
		}); err != nil {
		return nil, fmt.Errorf("select boosts for %s: %w", epoch, err)
	}
	return rst, nil
}

// SetVerified records that the radio passed the verified threshold at the given time.
func SetVerified(db sql.Executor, radio string, at time.Time) error {
	if _, err := db.Exec(`insert into verified_radios (radio_id, verified_at) values (?1, ?2)
		on conflict (radio_id) do update set verified_at = excluded.verified_at;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, radio)
			stmt.BindInt64(2, at.Unix())
		}, nil); err != nil {
		return fmt.Errorf("set verified %s: %w", radio, err)
	}
	return nil
}

// IsVerified returns true if the radio passed the verified threshold before the given time.
func IsVerified(db sql.Executor, radio string, before time.Time) (bool, error) {
	rows, err := db.Exec(`select 1 from verified_radios where radio_id = ?1 and verified_at < ?2;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, radio)
			stmt.BindInt64(2, before.Unix())
		}, nil)
	if err != nil {
		return false, fmt.Errorf("is verified %s: %w", radio, err)
	}
	return rows > 0, nil
}
