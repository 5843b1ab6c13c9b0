// ABOUTME: Connected-sheet endpoints: connect, list, re-sync, disconnect
// ABOUTME: Connecting the first sheet arms the periodic sync, removing the last disarms it
package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/gsheets"
)

type SheetHandlers struct {
	db        *sql.DB
	fetcher   *gsheets.Fetcher
	scheduler *gsheets.Scheduler
	logger    *zap.Logger
}

func NewSheetHandlers(database *sql.DB, fetcher *gsheets.Fetcher, scheduler *gsheets.Scheduler, logger *zap.Logger) *SheetHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetHandlers{db: database, fetcher: fetcher, scheduler: scheduler, logger: logger}
}

func (h *SheetHandlers) List(w http.ResponseWriter, r *http.Request) {
	sheets, err := db.ListSheets(h.db, RequestUserID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sheets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sheets": sheets})
}

type connectSheetRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Connect parses the share URL, pulls the sheet once, and arms the periodic
// sync. A source that cannot be reached or is not public surfaces as a 502;
// nothing is stored in that case.
func (h *SheetHandlers) Connect(w http.ResponseWriter, r *http.Request) {
	var req connectSheetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sheetID, err := gsheets.ParseSheetURL(req.URL)
	if err != nil {
		writeFieldError(w, "url", "Invalid Google Sheets URL")
		return
	}

	sheet, err := h.fetcher.Sync(r.Context(), RequestUserID(r), sheetID, req.Name)
	if err != nil {
		var fe *gsheets.FetchError
		if errors.As(err, &fe) {
			h.logger.Warn("sheet connect failed upstream",
				zap.String("sheet_id", sheetID), zap.Error(err))
			writeError(w, http.StatusBadGateway, "Could not fetch sheet; make sure it is shared publicly")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to store sheet")
		return
	}

	h.scheduler.Arm()

	writeJSON(w, http.StatusCreated, sheet)
}

// Sync re-fetches one connected sheet on demand.
func (h *SheetHandlers) Sync(w http.ResponseWriter, r *http.Request) {
	userID := RequestUserID(r)
	sheetID := r.PathValue("sheetId")

	existing, err := db.GetSheet(h.db, userID, sheetID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load sheet")
		return
	}
	if existing == nil {
		writeNotFound(w)
		return
	}

	sheet, err := h.fetcher.Sync(r.Context(), userID, sheetID, existing.Name)
	if err != nil {
		var fe *gsheets.FetchError
		if errors.As(err, &fe) {
			writeError(w, http.StatusBadGateway, "Could not fetch sheet; make sure it is shared publicly")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to store sheet")
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// Delete disconnects a sheet. When the last connected sheet across all users
// goes away, the periodic sync stands down.
func (h *SheetHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := db.DeleteSheet(h.db, RequestUserID(r), r.PathValue("sheetId")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete sheet")
		return
	}

	remaining, err := db.CountSheets(h.db)
	if err != nil {
		h.logger.Warn("failed to count sheets after delete", zap.Error(err))
	} else if remaining == 0 {
		h.scheduler.Disarm()
	}

	w.WriteHeader(http.StatusNoContent)
}
