package store

import (
	"database/sql"
)

// NewTestStore creates a Store for testing with an already-open
// database (typically in-memory). This is only intended for use in tests.
func NewTestStore(db *sql.DB) (*Store, error) {
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}
