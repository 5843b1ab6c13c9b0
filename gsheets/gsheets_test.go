// ABOUTME: Shared test fixtures for the gsheets package
// ABOUTME: Opens a throwaway sqlite database and seeds a user
package gsheets

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/models"
)

func setupSheetsTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

func createSheetsTestUser(t *testing.T, database *sql.DB) *models.User {
	t.Helper()

	user := &models.User{Email: "sync@example.com", PasswordHash: "hash"}
	if err := db.CreateUser(database, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}
