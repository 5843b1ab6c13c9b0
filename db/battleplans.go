// ABOUTME: Battle plan database operations keyed by (user, day)
// ABOUTME: Upsert replaces type and task list; list is ordered by day
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tablerohq/tablero/models"
)

// UpsertBattlePlan creates or replaces the plan for (userID, day) in one
// conditional statement.
func UpsertBattlePlan(db *sql.DB, userID uuid.UUID, day, planType string, tasks []string) (*models.BattlePlan, error) {
	if tasks == nil {
		tasks = []string{}
	}
	encoded, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO battle_plans (id, user_id, day, type, tasks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			type = excluded.type,
			tasks = excluded.tasks,
			updated_at = excluded.updated_at
	`, uuid.New().String(), userID.String(), day, planType, string(encoded), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert battle plan: %w", err)
	}

	return GetBattlePlan(db, userID, day)
}

func GetBattlePlan(db *sql.DB, userID uuid.UUID, day string) (*models.BattlePlan, error) {
	plan := &models.BattlePlan{}
	var tasks string

	err := db.QueryRow(`
		SELECT id, user_id, day, type, tasks, created_at, updated_at
		FROM battle_plans WHERE user_id = ? AND day = ?
	`, userID.String(), day).Scan(
		&plan.ID, &plan.UserID, &plan.Day, &plan.Type, &tasks, &plan.CreatedAt, &plan.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tasks), &plan.Tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	return plan, nil
}

func ListBattlePlans(db *sql.DB, userID uuid.UUID) ([]models.BattlePlan, error) {
	rows, err := db.Query(`
		SELECT id, user_id, day, type, tasks, created_at, updated_at
		FROM battle_plans
		WHERE user_id = ?
		ORDER BY day ASC
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.BattlePlan
	for rows.Next() {
		var p models.BattlePlan
		var tasks string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Day, &p.Type, &tasks, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tasks), &p.Tasks); err != nil {
			return nil, fmt.Errorf("failed to decode tasks: %w", err)
		}
		plans = append(plans, p)
	}

	return plans, rows.Err()
}
