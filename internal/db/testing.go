package db

import (
	"testing"
)

// NewTestDB creates an in-memory workspace database for testing.
// Migrations are applied and the database is closed when the test ends.
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	d, err := OpenInMemory()
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}

	t.Cleanup(func() {
		_ = d.Close()
	})

	return d
}
