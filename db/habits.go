// ABOUTME: Habit note database operations scoped to the owning user
// ABOUTME: Handles CRUD with partial updates for title and content
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tablerohq/tablero/models"
)

func CreateHabit(db *sql.DB, habit *models.Habit) error {
	habit.ID = uuid.New()
	now := time.Now()
	habit.CreatedAt = now
	habit.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO habits (id, user_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, habit.ID.String(), habit.UserID.String(), habit.Title, habit.Content, habit.CreatedAt, habit.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}
	return nil
}

func GetHabit(db *sql.DB, userID, id uuid.UUID) (*models.Habit, error) {
	habit := &models.Habit{}

	err := db.QueryRow(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM habits WHERE id = ? AND user_id = ?
	`, id.String(), userID.String()).Scan(
		&habit.ID, &habit.UserID, &habit.Title, &habit.Content, &habit.CreatedAt, &habit.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func ListHabits(db *sql.DB, userID uuid.UUID) ([]models.Habit, error) {
	rows, err := db.Query(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM habits
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Content, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// UpdateHabit applies a partial update; nil fields keep their stored value.
func UpdateHabit(db *sql.DB, userID, id uuid.UUID, title, content *string) error {
	result, err := db.Exec(`
		UPDATE habits
		SET title = COALESCE(?, title),
		    content = COALESCE(?, content),
		    updated_at = ?
		WHERE id = ? AND user_id = ?
	`, title, content, time.Now(), id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
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

func DeleteHabit(db *sql.DB, userID, id uuid.UUID) error {
	result, err := db.Exec(`
		DELETE FROM habits WHERE id = ? AND user_id = ?
	`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
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
