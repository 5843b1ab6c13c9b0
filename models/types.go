// ABOUTME: Data models for dashboard entities
// ABOUTME: Defines User, Contact, ConnectedSheet, Habit, and BattlePlan structs
package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Contact struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Company     string     `json:"company,omitempty"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	LastContact *time.Time `json:"last_contact,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ConnectedSheet is one synced spreadsheet grid, keyed per user by the
// external sheet id. Data holds the raw cell grid; row 0 is treated as the
// header row by every consumer. Rows may be ragged.
type ConnectedSheet struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	SheetID   string     `json:"sheet_id"`
	Name      string     `json:"name"`
	Data      [][]string `json:"data"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Habit struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BattlePlan struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Day       string    `json:"day"`
	Type      string    `json:"type"`
	Tasks     []string  `json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactType constants. These are the list buckets a contact belongs to.
const (
	ContactTypeClient     = "CLIENT"
	ContactTypeInterested = "INTERESTED"
	ContactTypeToContact  = "TO_CONTACT"
)

// ContactStatus constants.
const (
	ContactStatusActive  = "ACTIVE"
	ContactStatusPending = "PENDING"
	ContactStatusUrgent  = "URGENT"
)

// BattlePlan type constants. WAR days carry the weekday routine, REGEN days
// the weekend one.
const (
	PlanTypeWar   = "WAR"
	PlanTypeRegen = "REGEN"
)

// ValidContactType reports whether s is one of the three contact buckets.
func ValidContactType(s string) bool {
	switch s {
	case ContactTypeClient, ContactTypeInterested, ContactTypeToContact:
		return true
	}
	return false
}

// ValidContactStatus reports whether s is a known contact status.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusActive, ContactStatusPending, ContactStatusUrgent:
		return true
	}
	return false
}

// ValidPlanType reports whether s is a known battle plan type.
func ValidPlanType(s string) bool {
	return s == PlanTypeWar || s == PlanTypeRegen
}

// Headers returns the first grid row, or nil for an empty sheet.
func (s *ConnectedSheet) Headers() []string {
	if len(s.Data) == 0 {
		return nil
	}
	return s.Data[0]
}

// Rows returns the data rows below the header row.
func (s *ConnectedSheet) Rows() [][]string {
	if len(s.Data) < 2 {
		return nil
	}
	return s.Data[1:]
}
