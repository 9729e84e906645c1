// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	version    INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	payload    BLOB NOT NULL,
	UNIQUE (name, version)
);
CREATE INDEX IF NOT EXISTS records_name_version ON records (name, version);
`

const selectRecord = `SELECT id, name, version, created_at, payload FROM records`

// SQLiteStore persists records in one SQLite file through the pure-Go
// modernc.org/sqlite driver. Safe for concurrent use.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore returns an unopened store for path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the schema. It is idempotent.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.path) == "" {
		return storeErrorf(opInit, fmt.Errorf("sqlite path is required: %w", ErrUnsupportedBackend))
	}
	if s.db != nil {
		return nil
	}
	dsn := filepath.Clean(s.path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return storeErrorf(opInit, fmt.Errorf("open sqlite db: %w", err))
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return storeErrorf(opInit, fmt.Errorf("ping sqlite db: %w", err))
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return storeErrorf(opInit, fmt.Errorf("create tables: %w", err))
	}
	s.db = db

	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil

	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}

	return s.db, nil
}

// Save implements Store. The version is assigned inside the insert
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, r Record) (Record, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, storeErrorf(opSave, err)
	}
	r, raw, err := prepare(r, time.Now())
	if err != nil {
		return Record{}, storeErrorf(opSave, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, storeErrorf(opSave, err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE id = ?`, r.ID.String()).Scan(&exists)
	if err != nil {
		return Record{}, storeErrorf(opSave, err)
	}
	if exists > 0 {
		return Record{}, fmt.Errorf("%s: %s: %w", opSave, r.ID, ErrExists)
	}
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM records WHERE name = ?`, r.Name).Scan(&r.Version)
	if err != nil {
		return Record{}, storeErrorf(opSave, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (id, name, version, created_at, payload)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID.String(), r.Name, r.Version, r.CreatedAt.UnixMilli(), raw)
	if err != nil {
		return Record{}, storeErrorf(opSave, err)
	}
	if err = tx.Commit(); err != nil {
		return Record{}, storeErrorf(opSave, err)
	}
	if err = decodePayload(raw, &r); err != nil {
		return Record{}, storeErrorf(opSave, err)
	}

	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		r       Record
		id      string
		created int64
		raw     []byte
	)
	if err := row.Scan(&id, &r.Name, &r.Version, &created, &raw); err != nil {
		return Record{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Record{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	r.ID = parsed
	r.CreatedAt = time.UnixMilli(created).UTC()
	if err = decodePayload(raw, &r); err != nil {
		return Record{}, err
	}

	return r, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, storeErrorf(opGet, err)
	}
	r, err := scanRecord(db.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%s: %s: %w", opGet, id, ErrNotFound)
	}
	if err != nil {
		return Record{}, storeErrorf(opGet, err)
	}

	return r, nil
}

// Latest implements Store.
func (s *SQLiteStore) Latest(ctx context.Context, name string) (Record, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, storeErrorf(opLatest, err)
	}
	r, err := scanRecord(db.QueryRowContext(ctx,
		selectRecord+` WHERE name = ? ORDER BY version DESC LIMIT 1`, strings.TrimSpace(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%s: %q: %w", opLatest, name, ErrNotFound)
	}
	if err != nil {
		return Record{}, storeErrorf(opLatest, err)
	}

	return r, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, name string) ([]Record, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, storeErrorf(opList, err)
	}
	rows, err := db.QueryContext(ctx, selectRecord+` WHERE name = ? ORDER BY version`, strings.TrimSpace(name))
	if err != nil {
		return nil, storeErrorf(opList, err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, storeErrorf(opList, err)
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, storeErrorf(opList, err)
	}

	return out, nil
}
