// ABOUTME: Habit note CRUD endpoints
// ABOUTME: Titles are bounded, content is free-form markdown
package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/models"
)

type HabitHandlers struct {
	db *sql.DB
}

func NewHabitHandlers(database *sql.DB) *HabitHandlers {
	return &HabitHandlers{db: database}
}

func (h *HabitHandlers) List(w http.ResponseWriter, r *http.Request) {
	habits, err := db.ListHabits(h.db, RequestUserID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list habits")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": habits})
}

type habitRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *HabitHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == nil || len(*req.Title) < 1 || len(*req.Title) > 255 {
		writeFieldError(w, "title", "Title must be between 1 and 255 characters")
		return
	}

	habit := &models.Habit{
		UserID: RequestUserID(r),
		Title:  *req.Title,
	}
	if req.Content != nil {
		habit.Content = *req.Content
	}
	if err := db.CreateHabit(h.db, habit); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create habit")
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (h *HabitHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	habit, err := db.GetHabit(h.db, RequestUserID(r), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load habit")
		return
	}
	if habit == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req habitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == nil && req.Content == nil {
		writeFieldError(w, "title", "Nothing to update")
		return
	}
	if req.Title != nil && (len(*req.Title) < 1 || len(*req.Title) > 255) {
		writeFieldError(w, "title", "Title must be between 1 and 255 characters")
		return
	}

	userID := RequestUserID(r)
	if err := db.UpdateHabit(h.db, userID, id, req.Title, req.Content); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update habit")
		return
	}

	habit, err := db.GetHabit(h.db, userID, id)
	if err != nil || habit == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load habit")
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := db.DeleteHabit(h.db, RequestUserID(r), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete habit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
