package store

import (
	"database/sql"
	"errors"
)

// Get retrieves a value by key.
// Returns empty string if key doesn't exist.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value FROM app_state WHERE key = ?
	`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// Set stores a value, overwriting any prior value under the key.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// Delete removes the value stored under key. Deleting a missing key
// is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM app_state WHERE key = ?`, key)
	return err
}
