package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"notifwhitelist/internal/app/ports"
)

// SQLiteStore keeps documents in a single (namespace, key) table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS data (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Load(namespace, key string, out any) (bool, error) {
	if namespace == "" {
		return false, fmt.Errorf("%w: %q", ErrInvalidNamespace, namespace)
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM data WHERE namespace = ? AND key = ?`, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s.%s: %w", namespace, key, err)
	}
	if value == "null" {
		return false, nil
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		return true, fmt.Errorf("decode %s.%s: %w: %w", namespace, key, ports.ErrCorruptValue, err)
	}
	return true, nil
}

func (s *SQLiteStore) Save(namespace, key string, val any) error {
	if namespace == "" {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, namespace)
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s.%s: %w", namespace, key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO data (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, namespace, key, string(raw))
	if err != nil {
		return fmt.Errorf("upsert %s.%s: %w", namespace, key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
