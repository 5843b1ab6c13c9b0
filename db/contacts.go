// ABOUTME: Contact database operations scoped to the owning user
// ABOUTME: Handles CRUD, list-by-type filtering, and notes updates
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tablerohq/tablero/models"
)

func CreateContact(db *sql.DB, contact *models.Contact) error {
	contact.ID = uuid.New()
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if contact.Status == "" {
		contact.Status = models.ContactStatusActive
	}

	_, err := db.Exec(`
		INSERT INTO contacts (id, user_id, name, email, phone, company, type, status, notes, last_contact, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), contact.UserID.String(), contact.Name, contact.Email, contact.Phone,
		contact.Company, contact.Type, contact.Status, contact.Notes, contact.LastContact,
		contact.CreatedAt, contact.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// GetContact returns nil when the contact does not exist or belongs to a
// different user. Callers cannot distinguish the two cases.
func GetContact(db *sql.DB, userID, id uuid.UUID) (*models.Contact, error) {
	contact := &models.Contact{}
	var lastContact sql.NullTime

	err := db.QueryRow(`
		SELECT id, user_id, name, email, phone, company, type, status, notes, last_contact, created_at, updated_at
		FROM contacts WHERE id = ? AND user_id = ?
	`, id.String(), userID.String()).Scan(
		&contact.ID,
		&contact.UserID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.Company,
		&contact.Type,
		&contact.Status,
		&contact.Notes,
		&lastContact,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastContact.Valid {
		contact.LastContact = &lastContact.Time
	}

	return contact, nil
}

// FindContacts lists the user's contacts, newest first. contactType narrows
// to one bucket when non-empty.
func FindContacts(db *sql.DB, userID uuid.UUID, contactType string) ([]models.Contact, error) {
	var rows *sql.Rows
	var err error

	if contactType != "" {
		rows, err = db.Query(`
			SELECT id, user_id, name, email, phone, company, type, status, notes, last_contact, created_at, updated_at
			FROM contacts
			WHERE user_id = ? AND type = ?
			ORDER BY created_at DESC
		`, userID.String(), contactType)
	} else {
		rows, err = db.Query(`
			SELECT id, user_id, name, email, phone, company, type, status, notes, last_contact, created_at, updated_at
			FROM contacts
			WHERE user_id = ?
			ORDER BY created_at DESC
		`, userID.String())
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		var lastContact sql.NullTime

		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Company,
			&c.Type, &c.Status, &c.Notes, &lastContact, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}

		if lastContact.Valid {
			c.LastContact = &lastContact.Time
		}

		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// UpdateContactNotes replaces the notes field only. Returns ErrNotFound when
// the contact is missing or owned by someone else.
func UpdateContactNotes(db *sql.DB, userID, id uuid.UUID, notes string) error {
	result, err := db.Exec(`
		UPDATE contacts
		SET notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, notes, time.Now(), id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to update notes: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteContact(db *sql.DB, userID, id uuid.UUID) error {
	result, err := db.Exec(`
		DELETE FROM contacts WHERE id = ? AND user_id = ?
	`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
