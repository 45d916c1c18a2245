package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/hollyoak/starjar/internal/database"
)

// setupTestDB opens a migrated database in a per-test temp dir. A file-backed
// database (not :memory:) so every pooled connection sees the same data.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "starjar.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func intPtr(n int) *int { return &n }
