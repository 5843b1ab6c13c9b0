// ABOUTME: User database operations
// ABOUTME: Handles account creation and lookup by email or id
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tablerohq/tablero/models"
)

func CreateUser(db *sql.DB, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	_, err := db.Exec(`
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.ID.String(), user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func GetUser(db *sql.DB, id uuid.UUID) (*models.User, error) {
	return scanUser(db.QueryRow(`
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users WHERE id = ?
	`, id.String()))
}

// GetUserByEmail returns nil (not an error) when no account matches.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(db.QueryRow(`
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users WHERE email = ?
	`, email))
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var name sql.NullString

	err := row.Scan(&user.ID, &user.Email, &name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if name.Valid {
		user.Name = name.String
	}

	return user, nil
}
