// Package kvstore persists named integer values, such as the checkpoints of the verifier.
package kvstore

import (
	"fmt"
	"time"

	"github.com/hexmobile/mobile-verifier/sql"
)

// GetInt64 returns the value stored under key or sql.ErrNotFound.
func GetInt64(db sql.Executor, key string) (int64, error) {
	var value int64
	if rows, err := db.Exec("select value from kvstore where id = ?1;", func(stmt *sql.Statement) {
		stmt.BindText(1, key)
	}, func(stmt *sql.Statement) bool {
		value = stmt.ColumnInt64(0)
		return true
	}); err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	} else if rows == 0 {
		return 0, fmt.Errorf("get %s: %w", key, sql.ErrNotFound)
	}
	return value, nil
}

// SetInt64 inserts or overwrites the value stored under key.
func SetInt64(db sql.Executor, key string, value int64) error {
	if _, err := db.Exec(`
		insert into kvstore (id, value) values (?1, ?2)
		on conflict (id) do
		update set value = ?2;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, key)
			stmt.BindInt64(2, value)
		}, nil); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Clear deletes the value stored under key.
func Clear(db sql.Executor, key string) error {
	if _, err := db.Exec("delete from kvstore where id = ?1;", func(stmt *sql.Statement) {
		stmt.BindText(1, key)
	}, nil); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// GetTime returns a unix timestamp (seconds) stored under key.
func GetTime(db sql.Executor, key string) (time.Time, error) {
	value, err := GetInt64(db, key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(value, 0).UTC(), nil
}

// SetTime stores t as a unix timestamp (seconds), sub second precision is dropped.
func SetTime(db sql.Executor, key string, t time.Time) error {
	return SetInt64(db, key, t.Unix())
}
