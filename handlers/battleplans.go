// ABOUTME: Battle plan endpoints; one plan per user per day
// ABOUTME: POST is an upsert keyed on the day string
package handlers

import (
	"database/sql"
	"net/http"

	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/models"
)

type BattlePlanHandlers struct {
	db *sql.DB
}

func NewBattlePlanHandlers(database *sql.DB) *BattlePlanHandlers {
	return &BattlePlanHandlers{db: database}
}

func (h *BattlePlanHandlers) List(w http.ResponseWriter, r *http.Request) {
	plans, err := db.ListBattlePlans(h.db, RequestUserID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list battle plans")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"battleplans": plans})
}

type battlePlanRequest struct {
	Day   string   `json:"day"`
	Type  string   `json:"type"`
	Tasks []string `json:"tasks"`
}

func (h *BattlePlanHandlers) Upsert(w http.ResponseWriter, r *http.Request) {
	var req battlePlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// The UI keys plans by weekday index ("0".."6"), so day is an opaque
	// non-empty string, not a date
	if req.Day == "" {
		writeFieldError(w, "day", "Day is required")
		return
	}
	if !models.ValidPlanType(req.Type) {
		writeFieldError(w, "type", "Type must be WAR or REGEN")
		return
	}

	plan, err := db.UpsertBattlePlan(h.db, RequestUserID(r), req.Day, req.Type, req.Tasks)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save battle plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
