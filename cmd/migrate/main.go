// ABOUTME: Maintenance utility for the dashboard database.
// ABOUTME: Backs up the file, applies missing schema, and checks integrity.

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tablerohq/tablero/db"
	_ "github.com/mattn/go-sqlite3"
)

var expectedTables = []string{"users", "contacts", "connected_sheets", "habits", "battle_plans"}

func main() {
	dbPath := flag.String("db", "", "Path to database file (required)")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Create backup before touching the schema")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("Error: -db flag is required")
	}

	if err := migrate(*dbPath, *dryRun, *backup); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully")
}

func migrate(dbPath string, dryRun, createBackup bool) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s", dbPath)
	}

	if createBackup && !dryRun {
		backupPath := fmt.Sprintf("%s.backup.%s", dbPath, time.Now().Format("20060102-150405"))
		log.Printf("Creating backup: %s", backupPath)

		input, err := os.ReadFile(dbPath)
		if err != nil {
			return fmt.Errorf("failed to read database: %w", err)
		}

		if err := os.WriteFile(backupPath, input, 0644); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		log.Printf("Backup created successfully")
	}

	database, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	tables, err := getCurrentTables(database)
	if err != nil {
		return fmt.Errorf("failed to get current tables: %w", err)
	}

	log.Printf("Current tables: %v", tables)

	missing := missingTables(tables)

	if dryRun {
		log.Printf("[DRY RUN] Would perform the following actions:")
		if len(missing) > 0 {
			log.Printf("[DRY RUN] - Create missing tables: %v", missing)
			log.Printf("[DRY RUN] - Create indexes")
		} else {
			log.Printf("[DRY RUN] - Schema already complete, nothing to create")
		}
		log.Printf("[DRY RUN] - Run integrity check")
		return nil
	}

	if len(missing) > 0 {
		log.Printf("Creating missing tables: %v", missing)
		if err := db.InitSchema(database); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		log.Printf("Schema updated")
	} else {
		log.Printf("Schema already complete, skipping creation")
	}

	if err := integrityCheck(database); err != nil {
		return err
	}
	log.Printf("Integrity check passed")

	return nil
}

func getCurrentTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func missingTables(current []string) []string {
	have := make(map[string]bool, len(current))
	for _, t := range current {
		have[t] = true
	}

	var missing []string
	for _, t := range expectedTables {
		if !have[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

func integrityCheck(db *sql.DB) error {
	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check failed to run: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check reported: %s", result)
	}
	return nil
}
