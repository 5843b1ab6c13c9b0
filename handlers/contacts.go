// ABOUTME: Contact CRUD and sheet-row import endpoints
// ABOUTME: All operations are scoped to the authenticated owner
package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/gsheets"
	"github.com/tablerohq/tablero/models"
)

var contactEmailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// sectionTypes maps the UI's list section names onto contact type constants.
var sectionTypes = map[string]string{
	"clients":    models.ContactTypeClient,
	"interested": models.ContactTypeInterested,
	"tocontact":  models.ContactTypeToContact,
}

type ContactHandlers struct {
	db *sql.DB
}

func NewContactHandlers(database *sql.DB) *ContactHandlers {
	return &ContactHandlers{db: database}
}

func (h *ContactHandlers) List(w http.ResponseWriter, r *http.Request) {
	contactType := r.URL.Query().Get("type")
	if contactType != "" && !models.ValidContactType(contactType) {
		writeFieldError(w, "type", "Unknown contact type")
		return
	}

	contacts, err := db.FindContacts(h.db, RequestUserID(r), contactType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contacts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

type createContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	LastContact string `json:"last_contact"`
}

func (h *ContactHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.Name) < 1 || len(req.Name) > 255 {
		writeFieldError(w, "name", "Name must be between 1 and 255 characters")
		return
	}
	if !models.ValidContactType(req.Type) {
		writeFieldError(w, "type", "Unknown contact type")
		return
	}
	if req.Status != "" && !models.ValidContactStatus(req.Status) {
		writeFieldError(w, "status", "Unknown contact status")
		return
	}
	if req.Email != "" && !contactEmailShape.MatchString(req.Email) {
		writeFieldError(w, "email", "Invalid email address")
		return
	}

	var lastContact *time.Time
	if req.LastContact != "" {
		t, err := time.Parse(time.RFC3339, req.LastContact)
		if err != nil {
			writeFieldError(w, "last_contact", "Last contact must be an RFC 3339 datetime")
			return
		}
		lastContact = &t
	}

	contact := &models.Contact{
		UserID:      RequestUserID(r),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Type:        req.Type,
		Status:      req.Status,
		Notes:       req.Notes,
		LastContact: lastContact,
	}
	if err := db.CreateContact(h.db, contact); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create contact")
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

type updateNotesRequest struct {
	Notes *string `json:"notes"`
}

func (h *ContactHandlers) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateNotesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Notes == nil {
		writeFieldError(w, "notes", "Notes field is required")
		return
	}

	userID := RequestUserID(r)
	if err := db.UpdateContactNotes(h.db, userID, id, *req.Notes); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	contact, err := db.GetContact(h.db, userID, id)
	if err != nil || contact == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load contact")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := db.DeleteContact(h.db, RequestUserID(r), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type importContactRequest struct {
	Headers []string `json:"headers"`
	Row     []string `json:"row"`
	Section string   `json:"section"`
}

// Import runs one sheet row through reconciliation and stores the result.
// Repeat imports of the same row create repeat contacts; there is no dedup.
func (h *ContactHandlers) Import(w http.ResponseWriter, r *http.Request) {
	var req importContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	contactType, ok := sectionTypes[req.Section]
	if !ok {
		writeFieldError(w, "section", "Unknown section")
		return
	}
	if len(req.Headers) == 0 {
		writeFieldError(w, "headers", "Headers are required")
		return
	}

	rec := gsheets.Reconcile(req.Headers, req.Row, contactType)

	// The reconciler guarantees a name, but storage must never see an
	// empty one regardless
	if len(rec.Name) < 1 || len(rec.Name) > 255 {
		writeFieldError(w, "name", "Name must be between 1 and 255 characters")
		return
	}

	contact := &models.Contact{
		UserID:  RequestUserID(r),
		Name:    rec.Name,
		Email:   rec.Email,
		Phone:   rec.Phone,
		Company: rec.Company,
		Type:    rec.Type,
		Notes:   rec.Notes,
	}
	if err := db.CreateContact(h.db, contact); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to import contact")
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}
