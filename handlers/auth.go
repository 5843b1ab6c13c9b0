// ABOUTME: Login endpoint issuing bearer session tokens
// ABOUTME: Wrong email and wrong password are indistinguishable to the caller
package handlers

import (
	"database/sql"
	"net/http"

	"github.com/tablerohq/tablero/auth"
	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/models"
)

type AuthHandlers struct {
	db       *sql.DB
	sessions *auth.SessionStore
}

func NewAuthHandlers(database *sql.DB, sessions *auth.SessionStore) *AuthHandlers {
	return &AuthHandlers{db: database, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeFieldError(w, "email", "Email and password are required")
		return
	}

	user, err := db.GetUserByEmail(h.db, req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up user")
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeUnauthorized(w)
		return
	}

	token, err := h.sessions.Create(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}
