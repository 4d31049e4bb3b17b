// Package store keeps the scan settings in a SQLite database, as an
// alternative to the TOML document.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/roulette/internal/config"
	"github.com/justyntemme/roulette/internal/debug"
)

// FileName is the default database name inside config.Dir().
const FileName = "settings.db"

// DB is a config.Store backed by a key/value settings table. Rows outside
// config.Section belong to someone else and are never touched.
type DB struct {
	conn    *sql.DB
	section string
}

var _ config.Store = (*DB)(nil)

// Open initializes the database connection and schema
func Open(dbPath string) (*DB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(config.Dir(), FileName)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, err
	}
	// FULL so a committed Save survives power loss, not just an app crash
	if _, err := conn.Exec("PRAGMA synchronous=FULL;"); err != nil {
		conn.Close()
		return nil, err
	}

	query := `
	CREATE TABLE IF NOT EXISTS settings (
		section TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (section, key)
	);
	`
	if _, err := conn.Exec(query); err != nil {
		conn.Close()
		return nil, err
	}

	debug.Log(debug.STORE, "opened settings database %s", dbPath)
	return &DB{conn: conn, section: config.Section}, nil
}

// Load reads the settings section, seeding it with defaults when empty.
func (d *DB) Load() (config.ScanConfig, error) {
	values, err := d.fetchSection()
	if err != nil {
		return config.Default(), err
	}
	if len(values) == 0 {
		debug.Info(debug.STORE, "seeding default settings")
		cfg := config.Default()
		return cfg, d.Save(cfg)
	}
	return config.FromValues(values), nil
}

// Save upserts the three persisted keys in one transaction.
func (d *DB) Save(cfg config.ScanConfig) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (section, key, value) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for key, value := range config.Values(cfg) {
		if _, err := stmt.Exec(d.section, key, value); err != nil {
			tx.Rollback()
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	debug.Log(debug.STORE, "saved settings: dir=%q exts=%v recursive=%v",
		cfg.Directory, cfg.Extensions, cfg.Recursive)
	return nil
}

func (d *DB) fetchSection() (map[string]string, error) {
	rows, err := d.conn.Query("SELECT key, value FROM settings WHERE section = ?", d.section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

// Close releases the database connection.
func (d *DB) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}
