// ABOUTME: Shared fixtures for API handler tests
// ABOUTME: Throwaway sqlite database, seeded user, and authed request builder
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

func createTestUser(t *testing.T, database *sql.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "hash"}
	if err := db.CreateUser(database, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// authedRequest builds a JSON request already stamped with the user, the way
// the auth middleware would hand it over.
func authedRequest(t *testing.T, user *models.User, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	r := httptest.NewRequest(method, target, &buf)
	return WithUserID(r, user.ID)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}
