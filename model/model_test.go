package model

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDatabase points DB at a fresh in-memory SQLite instance with the
// full schema migrated.
func setupTestDatabase(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	DB = db
	require.NoError(t, migrateDB())
}
