package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"docexplorer/internal/catalog"
)

const sqliteSchemaVersion = 1

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			icon TEXT NOT NULL,
			description TEXT NOT NULL,
			usage TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dependencies (
			record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			target TEXT NOT NULL,
			PRIMARY KEY (record_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS dependencies_target ON dependencies(target);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// SaveSQLite writes records to the SQLite file at path, replacing whatever
// catalog it held before.
func SaveSQLite(ctx context.Context, path string, records map[string]catalog.Record) error {
	if records == nil {
		return errors.New("nil catalog")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range []string{"dependencies", "records"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nowMs := time.Now().UTC().UnixMilli()
	for _, id := range ids {
		rec := records[id]
		if _, err := tx.ExecContext(ctx, `INSERT INTO records(id, icon, description, usage, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			id, rec.Icon, rec.Description, rec.Usage, nowMs); err != nil {
			return fmt.Errorf("insert %s: %w", id, err)
		}
		for i, dep := range rec.Dependencies {
			if _, err := tx.ExecContext(ctx, `INSERT INTO dependencies(record_id, position, target) VALUES(?, ?, ?)`,
				id, i, dep); err != nil {
				return fmt.Errorf("insert dependency %s -> %s: %w", id, dep, err)
			}
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, "schema_version", strconv.Itoa(sqliteSchemaVersion)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, "exported_at_unixms", strconv.FormatInt(nowMs, 10)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSQLite reads a catalog written by SaveSQLite.
func LoadSQLite(ctx context.Context, path string) (map[string]catalog.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out := map[string]catalog.Record{}
	rows, err := db.QueryContext(ctx, `SELECT id, icon, description, usage FROM records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id string
		var rec catalog.Record
		if err := rows.Scan(&id, &rec.Icon, &rec.Description, &rec.Usage); err != nil {
			_ = rows.Close()
			return nil, err
		}
		rec.Dependencies = []string{}
		out[id] = rec
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	deps, err := db.QueryContext(ctx, `SELECT record_id, target FROM dependencies ORDER BY record_id, position`)
	if err != nil {
		return nil, err
	}
	defer deps.Close()
	for deps.Next() {
		var id, target string
		if err := deps.Scan(&id, &target); err != nil {
			return nil, err
		}
		rec, ok := out[id]
		if !ok {
			continue
		}
		rec.Dependencies = append(rec.Dependencies, target)
		out[id] = rec
	}
	return out, deps.Err()
}
