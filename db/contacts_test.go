// ABOUTME: Tests for contact database operations
// ABOUTME: Covers creation defaults, type filtering, notes updates, and owner scoping
package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/tablerohq/tablero/models"
)

func TestCreateContactDefaults(t *testing.T) {
	database := setupTestDB(t)
	userID := createTestUser(t, database, "c1@example.com")

	contact := &models.Contact{
		UserID: userID,
		Name:   "Ana Pérez",
		Email:  "ana@example.com",
		Type:   models.ContactTypeClient,
	}
	if err := CreateContact(database, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	if contact.ID == uuid.Nil {
		t.Error("ID was not set")
	}
	if contact.Status != models.ContactStatusActive {
		t.Errorf("expected default status ACTIVE, got %q", contact.Status)
	}

	loaded, err := GetContact(database, userID, contact.ID)
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("contact not found after create")
	}
	if loaded.Name != "Ana Pérez" {
		t.Errorf("expected name Ana Pérez, got %q", loaded.Name)
	}
}

func TestCreateContactNoDedup(t *testing.T) {
	database := setupTestDB(t)
	userID := createTestUser(t, database, "dup@example.com")

	for i := 0; i < 2; i++ {
		contact := &models.Contact{
			UserID: userID,
			Name:   "Repeat Row",
			Email:  "same@example.com",
			Type:   models.ContactTypeInterested,
		}
		if err := CreateContact(database, contact); err != nil {
			t.Fatalf("CreateContact %d failed: %v", i, err)
		}
	}

	contacts, err := FindContacts(database, userID, "")
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(contacts) != 2 {
		t.Errorf("expected 2 contacts (no implicit dedup), got %d", len(contacts))
	}
	if contacts[0].ID == contacts[1].ID {
		t.Error("duplicate imports must produce distinct records")
	}
}

func TestFindContactsByType(t *testing.T) {
	database := setupTestDB(t)
	userID := createTestUser(t, database, "types@example.com")

	for _, typ := range []string{models.ContactTypeClient, models.ContactTypeClient, models.ContactTypeToContact} {
		contact := &models.Contact{UserID: userID, Name: "n", Type: typ}
		if err := CreateContact(database, contact); err != nil {
			t.Fatalf("CreateContact failed: %v", err)
		}
	}

	clients, err := FindContacts(database, userID, models.ContactTypeClient)
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(clients) != 2 {
		t.Errorf("expected 2 clients, got %d", len(clients))
	}

	toContact, err := FindContacts(database, userID, models.ContactTypeToContact)
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(toContact) != 1 {
		t.Errorf("expected 1 to-contact, got %d", len(toContact))
	}
}

func TestUpdateContactNotes(t *testing.T) {
	database := setupTestDB(t)
	userID := createTestUser(t, database, "notes@example.com")

	contact := &models.Contact{UserID: userID, Name: "n", Type: models.ContactTypeClient, Notes: "old"}
	if err := CreateContact(database, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	if err := UpdateContactNotes(database, userID, contact.ID, "new notes"); err != nil {
		t.Fatalf("UpdateContactNotes failed: %v", err)
	}

	loaded, _ := GetContact(database, userID, contact.ID)
	if loaded.Notes != "new notes" {
		t.Errorf("expected updated notes, got %q", loaded.Notes)
	}

	if err := UpdateContactNotes(database, userID, uuid.New(), "x"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown contact, got %v", err)
	}
}

func TestContactOwnerScoping(t *testing.T) {
	database := setupTestDB(t)
	owner := createTestUser(t, database, "own@example.com")
	intruder := createTestUser(t, database, "intruder@example.com")

	contact := &models.Contact{UserID: owner, Name: "secret", Type: models.ContactTypeClient}
	if err := CreateContact(database, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	// A foreign owner's read looks exactly like not-found
	got, err := GetContact(database, intruder, contact.ID)
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if got != nil {
		t.Error("foreign contact visible across owners")
	}

	if err := DeleteContact(database, intruder, contact.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for foreign delete, got %v", err)
	}

	if err := DeleteContact(database, owner, contact.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
