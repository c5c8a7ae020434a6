package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type migration struct {
	version int
	name    string
}

// SchemaVersion reports the highest migration applied to db, tracked in
// SQLite's user_version pragma.
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// MigrateUp applies every migration newer than the current schema version.
func MigrateUp(db *sql.DB) error {
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	steps, err := listMigrations(".up.sql")
	if err != nil {
		return err
	}
	for _, m := range steps {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m, m.version); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown reverts applied migrations, newest first, down to version 0.
func MigrateDown(db *sql.DB) error {
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	steps, err := listMigrations(".down.sql")
	if err != nil {
		return err
	}
	for i := len(steps) - 1; i >= 0; i-- {
		m := steps[i]
		if m.version > current {
			continue
		}
		if err := applyMigration(db, m, m.version-1); err != nil {
			return err
		}
	}
	return nil
}

func listMigrations(suffix string) ([]migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	out := make([]migration, 0, len(names))
	for _, name := range names {
		prefix, _, _ := strings.Cut(path.Base(name), "_")
		v, err := strconv.Atoi(prefix)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("migration %s: bad version prefix %q", name, prefix)
		}
		out = append(out, migration{version: v, name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// applyMigration runs one script and records the resulting version in the
// same transaction.
func applyMigration(db *sql.DB, m migration, version int) error {
	script, err := migrationFiles.ReadFile(m.name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", m.name, err)
	}
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("apply migration %s: %w", m.name, err)
	}
	if _, err := tx.Exec(string(script)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", m.name, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record version for %s: %w", m.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply migration %s: %w", m.name, err)
	}
	return nil
}
