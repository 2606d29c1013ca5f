package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a SQLite database holding one serialized MileageFile per
// ELR. SQLite supports a single writer at a time, so all writes go
// through one connection serialized by writeMu.
type DB struct {
	conn    *sql.DB
	writeMu sync.Mutex
}

// OpenDB opens (or creates) the store database with WAL mode enabled
// and ensures the schema exists.
func OpenDB(path string) (*DB, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.ensureSchema(context.Background()); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) ensureSchema(ctx context.Context) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	if _, err := db.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// SaveMileageFile upserts the serialized blob for one ELR.
func (db *DB) SaveMileageFile(f *mileage.MileageFile) error {
	data, err := SerializeMileageFile(f)
	if err != nil {
		return err
	}
	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	_, err = db.conn.Exec(
		`INSERT INTO mileage_files (elr, line, data, updated_at)
		 VALUES (?, ?, ?, datetime('now'))
		 ON CONFLICT(elr) DO UPDATE SET
		   line = excluded.line, data = excluded.data, updated_at = excluded.updated_at`,
		f.ELR, f.Line, data)
	if err != nil {
		return fmt.Errorf("failed to save mileage file %s: %w", f.ELR, err)
	}
	return nil
}

// LoadMileageFile returns the stored file for an ELR, or nil when the
// ELR has never been persisted.
func (db *DB) LoadMileageFile(elr string) (*mileage.MileageFile, error) {
	var data []byte
	err := db.conn.QueryRow(`SELECT data FROM mileage_files WHERE elr = ?`, elr).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mileage file %s: %w", elr, err)
	}
	return DeserializeMileageFile(data)
}
