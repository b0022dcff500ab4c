package heartbeats

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/sql"
)

// Add heartbeat to the database together with the hexes it covers.
func Add(db sql.Executor, hb *types.Heartbeat) error {
	var id int64
	if _, err := db.Exec(`insert into heartbeats
			(radio_id, radio_type, timestamp, distance_to_asserted, trust_score,
			 speedtest_timestamp, upload_speed, download_speed, latency)
			values (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?9)
		returning id;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, hb.RadioID)
			stmt.BindInt64(2, int64(hb.RadioType))
			stmt.BindInt64(3, hb.Timestamp.UnixMilli())
			stmt.BindInt64(4, int64(hb.LocationTrust.DistanceToAsserted))
			stmt.BindText(5, hb.LocationTrust.TrustScore.String())
			if hb.Speedtest != nil {
				stmt.BindInt64(6, hb.Speedtest.Timestamp.UnixMilli())
				stmt.BindInt64(7, int64(hb.Speedtest.UploadSpeed))
				stmt.BindInt64(8, int64(hb.Speedtest.DownloadSpeed))
				stmt.BindInt64(9, int64(hb.Speedtest.Latency))
			} else {
				stmt.BindNull(6)
				stmt.BindNull(7)
				stmt.BindNull(8)
				stmt.BindNull(9)
			}
		}, func(stmt *sql.Statement) bool {
			id = stmt.ColumnInt64(0)
			return true
		}); err != nil {
		return fmt.Errorf("insert heartbeat %s at %v: %w", hb.RadioID, hb.Timestamp, err)
	}
	for _, cov := range hb.Coverage {
		if _, err := db.Exec(`insert into heartbeat_hexes (heartbeat_id, hex, signal_level)
				values (?1, ?2, ?3);`,
			func(stmt *sql.Statement) {
				stmt.BindInt64(1, id)
				stmt.BindInt64(2, int64(cov.Hex))
				stmt.BindInt64(3, int64(cov.SignalLevel))
			}, nil); err != nil {
			return fmt.Errorf("insert hex %s of heartbeat %s: %w", cov.Hex, hb.RadioID, err)
		}
	}
	return nil
}

// order of fields - id, radio_id, radio_type, timestamp, distance_to_asserted, trust_score,
// speedtest_timestamp, upload_speed, download_speed, latency.
func decodeHeartbeat(stmt *sql.Statement) (int64, types.Heartbeat, error) {
	score, err := decimal.NewFromString(stmt.ColumnText(5))
	if err != nil {
		return 0, types.Heartbeat{}, fmt.Errorf("invalid trust score %q: %w", stmt.ColumnText(5), err)
	}
	hb := types.Heartbeat{
		RadioID:   stmt.ColumnText(1),
		RadioType: types.RadioType(stmt.ColumnInt64(2)),
		Timestamp: time.UnixMilli(stmt.ColumnInt64(3)).UTC(),
		LocationTrust: types.LocationTrust{
			DistanceToAsserted: uint64(stmt.ColumnInt64(4)),
			TrustScore:         score,
		},
	}
	if !sql.IsNull(stmt, 6) {
		hb.Speedtest = &types.Speedtest{
			Timestamp:     time.UnixMilli(stmt.ColumnInt64(6)).UTC(),
			UploadSpeed:   types.BytesPerSecond(stmt.ColumnInt64(7)),
			DownloadSpeed: types.BytesPerSecond(stmt.ColumnInt64(8)),
			Latency:       uint32(stmt.ColumnInt64(9)),
		}
	}
	return stmt.ColumnInt64(0), hb, nil
}

// ValidatedSince returns heartbeats with a timestamp not before since, in insertion order.
func ValidatedSince(db sql.Executor, since time.Time) (rst []types.Heartbeat, err error) {
	index := map[int64]int{}
	if _, err := db.Exec(`select id, radio_id, radio_type, timestamp, distance_to_asserted, trust_score,
			speedtest_timestamp, upload_speed, download_speed, latency
		from heartbeats where timestamp >= ?1 order by id;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, since.UnixMilli())
		}, func(stmt *sql.Statement) bool {
			var (
				id int64
				hb types.Heartbeat
			)
			id, hb, err = decodeHeartbeat(stmt)
			if err != nil {
				return false
			}
			index[id] = len(rst)
			rst = append(rst, hb)
			return true
		}); err != nil {
		return nil, fmt.Errorf("select heartbeats since %v: %w", since, err)
	}
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`select hh.heartbeat_id, hh.hex, hh.signal_level
		from heartbeat_hexes hh join heartbeats h on h.id = hh.heartbeat_id
		where h.timestamp >= ?1 order by hh.heartbeat_id, hh.hex;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, since.UnixMilli())
		}, func(stmt *sql.Statement) bool {
			i, ok := index[stmt.ColumnInt64(0)]
			if !ok {
				return true
			}
			rst[i].Coverage = append(rst[i].Coverage, types.HexSignal{
				Hex:         types.Hex(stmt.ColumnInt64(1)),
				SignalLevel: types.SignalLevel(stmt.ColumnInt64(2)),
			})
			return true
		}); err != nil {
		return nil, fmt.Errorf("select heartbeat hexes since %v: %w", since, err)
	}
	return rst, nil
}

// Truncate deletes every heartbeat.
func Truncate(db sql.Executor) error {
	if _, err := db.Exec("delete from heartbeat_hexes;", nil, nil); err != nil {
		return fmt.Errorf("delete heartbeat hexes: %w", err)
	}
	if _, err := db.Exec("delete from heartbeats;", nil, nil); err != nil {
		return fmt.Errorf("delete heartbeats: %w", err)
	}
	return nil
}

// Count returns the number of stored heartbeats.
func Count(db sql.Executor) (int, error) {
	var count int
	if _, err := db.Exec("select count(*) from heartbeats;", nil, func(stmt *sql.Statement) bool {
		count = stmt.ColumnInt(0)
		return true
	}); err != nil {
		return 0, fmt.Errorf("count heartbeats: %w", err)
	}
	return count, nil
}
