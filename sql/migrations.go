package sql

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations brings the schema behind the executor up to date.
type Migrations func(Executor) error

// migration is one numbered file, NNNN_name.sql, split into statements.
type migration struct {
	version    int
	name       string
	statements []string
}

func loadMigrations(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var all []migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		prefix, _, _ := strings.Cut(entry.Name(), "_")
		v, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version: %w", entry.Name(), err)
		}
		body, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", entry.Name(), err)
		}
		m := migration{version: v, name: entry.Name()}
		for _, stmt := range strings.SplitAfter(string(body), ";") {
			if strings.TrimSpace(stmt) != "" {
				m.statements = append(m.statements, stmt)
			}
		}
		all = append(all, m)
	}
	slices.SortFunc(all, func(a, b migration) int { return a.version - b.version })
	return all, nil
}

func embeddedMigrations(db Executor) error {
	all, err := loadMigrations(embedded, "migrations")
	if err != nil {
		return err
	}
	current, err := version(db)
	if err != nil {
		return err
	}
	if n := len(all); n > 0 && current > all[n-1].version {
		return fmt.Errorf("%w: %d > %d", ErrTooNew, current, all[n-1].version)
	}
	for _, m := range all {
		if m.version <= current {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := db.Exec(stmt, nil, nil); err != nil {
				return fmt.Errorf("%s: %w", m.name, err)
			}
		}
		// pragma values cannot be bound
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", m.version), nil, nil); err != nil {
			return fmt.Errorf("%s: set user_version: %w", m.name, err)
		}
	}
	return nil
}

func version(db Executor) (int, error) {
	var v int
	if _, err := db.Exec("PRAGMA user_version;", nil, func(stmt *Statement) bool {
		v = stmt.ColumnInt(0)
		return true
	}); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}
