package preset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createPresetsTable = `
CREATE TABLE IF NOT EXISTS presets (
	name       TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore persists presets in a single SQLite file, one row per preset
// with the YAML-encoded record as payload.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a preset database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("preset: open %s: %w", path, err)
	}
	if _, err := db.Exec(createPresetsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("preset: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save implements Store. Saving an existing name overwrites it.
func (s *SQLiteStore) Save(ctx context.Context, p Preset) error {
	payload, err := Encode(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presets (name, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		p.Name, payload)
	if err != nil {
		return fmt.Errorf("preset: save %q: %w", p.Name, err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, name string) (Preset, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM presets WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, ErrNotFound
	}
	if err != nil {
		return Preset{}, fmt.Errorf("preset: load %q: %w", name, err)
	}
	return Decode(payload)
}

// List implements Store, returning names in sorted order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("preset: list: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}
	return names, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("preset: delete %q: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("preset: delete %q: %w", name, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
