// ABOUTME: Shared JSON response helpers and request-scoped user identity
// ABOUTME: Every API handler responds through these
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type contextKey int

const userIDKey contextKey = iota

// WithUserID stamps the authenticated user onto the request context. The
// auth middleware is the only caller outside of tests.
func WithUserID(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}

// RequestUserID pulls the authenticated user back out. The zero UUID means
// the middleware never ran, which handlers treat as unauthorized.
func RequestUserID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(userIDKey).(uuid.UUID)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFieldError is a 400 that names the offending request field.
func writeFieldError(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": message,
		"field": field,
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "Unauthorized")
}

func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "Not found")
}

// decodeBody rejects malformed JSON with a 400 and reports whether the
// handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// pathUUID parses the named path segment as a UUID; a garbage id behaves
// like a missing record.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeNotFound(w)
		return uuid.Nil, false
	}
	return id, true
}
