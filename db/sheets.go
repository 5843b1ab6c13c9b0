// ABOUTME: Connected sheet storage keyed by (user, external sheet id)
// ABOUTME: Atomic upsert replaces the whole grid; delete and list are owner-scoped
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tablerohq/tablero/models"
)

// UpsertSheet inserts or wholesale-replaces the stored grid for
// (userID, sheetID) in a single conditional statement. Concurrent syncs of
// the same key resolve last-writer-wins; readers never observe a grid from
// one write paired with a name from another.
func UpsertSheet(db *sql.DB, userID uuid.UUID, sheetID, name string, grid [][]string) (*models.ConnectedSheet, error) {
	data, err := json.Marshal(grid)
	if err != nil {
		return nil, fmt.Errorf("failed to encode grid: %w", err)
	}

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO connected_sheets (id, user_id, sheet_id, name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, sheet_id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, uuid.New().String(), userID.String(), sheetID, name, string(data), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert sheet: %w", err)
	}

	return GetSheet(db, userID, sheetID)
}

// GetSheet returns nil when no sheet with that external id is connected for
// the user.
func GetSheet(db *sql.DB, userID uuid.UUID, sheetID string) (*models.ConnectedSheet, error) {
	row := db.QueryRow(`
		SELECT id, user_id, sheet_id, name, data, created_at, updated_at
		FROM connected_sheets
		WHERE user_id = ? AND sheet_id = ?
	`, userID.String(), sheetID)

	sheet, err := scanSheet(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return sheet, err
}

// ListSheets returns the user's connected sheets, most recently created first.
func ListSheets(db *sql.DB, userID uuid.UUID) ([]models.ConnectedSheet, error) {
	rows, err := db.Query(`
		SELECT id, user_id, sheet_id, name, data, created_at, updated_at
		FROM connected_sheets
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSheets(rows)
}

// ListAllSheets returns every connected sheet across all users. The sync
// scheduler uses this to drive its periodic refresh.
func ListAllSheets(db *sql.DB) ([]models.ConnectedSheet, error) {
	rows, err := db.Query(`
		SELECT id, user_id, sheet_id, name, data, created_at, updated_at
		FROM connected_sheets
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSheets(rows)
}

// CountSheets reports the total number of connected sheets across all users.
func CountSheets(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM connected_sheets`).Scan(&count)
	return count, err
}

// DeleteSheet disconnects a sheet. Returns ErrNotFound when no row matches
// both the user and the external id; a sheet with the same external id owned
// by another user is never touched.
func DeleteSheet(db *sql.DB, userID uuid.UUID, sheetID string) error {
	result, err := db.Exec(`
		DELETE FROM connected_sheets WHERE user_id = ? AND sheet_id = ?
	`, userID.String(), sheetID)
	if err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
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

func collectSheets(rows *sql.Rows) ([]models.ConnectedSheet, error) {
	var sheets []models.ConnectedSheet
	for rows.Next() {
		sheet, err := scanSheet(rows.Scan)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, *sheet)
	}
	return sheets, rows.Err()
}

func scanSheet(scan func(dest ...any) error) (*models.ConnectedSheet, error) {
	sheet := &models.ConnectedSheet{}
	var data string

	err := scan(&sheet.ID, &sheet.UserID, &sheet.SheetID, &sheet.Name, &data,
		&sheet.CreatedAt, &sheet.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(data), &sheet.Data); err != nil {
		return nil, fmt.Errorf("failed to decode grid: %w", err)
	}

	return sheet, nil
}
