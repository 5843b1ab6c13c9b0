// ABOUTME: Tests for habit note handlers
// ABOUTME: Covers validation, partial updates, and owner scoping
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tablerohq/tablero/models"
)

func TestHabitLifecycle(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "h@example.com")
	h := NewHabitHandlers(database)

	w := httptest.NewRecorder()
	h.Create(w, authedRequest(t, user, "POST", "/api/habits", map[string]any{
		"title":   "Morning pages",
		"content": "Three pages before coffee",
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var habit models.Habit
	decodeResponse(t, w, &habit)

	// Partial update: content only, title untouched
	w = httptest.NewRecorder()
	r := authedRequest(t, user, "PATCH", "/api/habits/"+habit.ID.String(), map[string]any{
		"content": "Two pages is enough",
	})
	r.SetPathValue("id", habit.ID.String())
	h.Update(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated models.Habit
	decodeResponse(t, w, &updated)
	if updated.Title != "Morning pages" {
		t.Errorf("Title changed unexpectedly: %q", updated.Title)
	}
	if updated.Content != "Two pages is enough" {
		t.Errorf("Content not updated: %q", updated.Content)
	}

	w = httptest.NewRecorder()
	r = authedRequest(t, user, "DELETE", "/api/habits/"+habit.ID.String(), nil)
	r.SetPathValue("id", habit.ID.String())
	h.Delete(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r = authedRequest(t, user, "GET", "/api/habits/"+habit.ID.String(), nil)
	r.SetPathValue("id", habit.ID.String())
	h.Get(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestHabitTitleValidation(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "h@example.com")
	h := NewHabitHandlers(database)

	for _, title := range []string{"", strings.Repeat("x", 256)} {
		w := httptest.NewRecorder()
		h.Create(w, authedRequest(t, user, "POST", "/api/habits", map[string]any{
			"title": title,
		}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for title of length %d, got %d", len(title), w.Code)
		}
	}
}

func TestHabitOwnerScoping(t *testing.T) {
	database := setupTestDB(t)
	owner := createTestUser(t, database, "owner@example.com")
	other := createTestUser(t, database, "other@example.com")
	h := NewHabitHandlers(database)

	w := httptest.NewRecorder()
	h.Create(w, authedRequest(t, owner, "POST", "/api/habits", map[string]any{
		"title": "Private",
	}))
	var habit models.Habit
	decodeResponse(t, w, &habit)

	w = httptest.NewRecorder()
	r := authedRequest(t, other, "GET", "/api/habits/"+habit.ID.String(), nil)
	r.SetPathValue("id", habit.ID.String())
	h.Get(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for foreign habit, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.List(w, authedRequest(t, other, "GET", "/api/habits", nil))
	var resp struct {
		Habits []models.Habit `json:"habits"`
	}
	decodeResponse(t, w, &resp)
	if len(resp.Habits) != 0 {
		t.Errorf("Foreign habits leaked into list: %d", len(resp.Habits))
	}
}
