// ABOUTME: Sheet CLI commands
// ABOUTME: One-shot re-sync of every connected sheet across all users
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/gsheets"
	"github.com/tablerohq/tablero/models"
)

// SheetsSyncCommand refreshes every connected sheet once and reports
// per-sheet results.
func SheetsSyncCommand(database *sql.DB, args []string) error {
	sheets, err := db.ListAllSheets(database)
	if err != nil {
		return fmt.Errorf("failed to list sheets: %w", err)
	}
	if len(sheets) == 0 {
		fmt.Println("No connected sheets.")
		return nil
	}

	fetcher := gsheets.NewFetcher(database, zap.NewNop())
	ctx := context.Background()

	failed := 0
	for _, sheet := range sheets {
		synced, err := fetcher.Sync(ctx, sheet.UserID, sheet.SheetID, sheet.Name)
		if err != nil {
			fmt.Printf("  ✗ %s (%s): %v\n", sheet.Name, sheet.SheetID, err)
			failed++
			continue
		}
		fmt.Printf("  ✓ %s\n", describeSheet(synced))
	}

	fmt.Printf("Synced %d of %d sheets\n", len(sheets)-failed, len(sheets))
	if failed > 0 {
		return fmt.Errorf("%d sheet(s) failed to sync", failed)
	}
	return nil
}

// describeSheet summarizes a synced grid as columns and data rows, counting
// the header row separately.
func describeSheet(sheet *models.ConnectedSheet) string {
	return fmt.Sprintf("%s (%s): %d columns, %d rows",
		sheet.Name, sheet.SheetID, len(sheet.Headers()), len(sheet.Rows()))
}
