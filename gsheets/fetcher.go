// ABOUTME: Fetches public Google Sheets as CSV and refreshes the sheet store
// ABOUTME: Background callers get a boolean result, handlers a structured error
package gsheets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/models"
)

// ErrInvalidSheetURL is returned when a user-supplied URL does not contain a
// /d/<id> segment. No network call happens in that case.
var ErrInvalidSheetURL = errors.New("invalid Google Sheets URL")

// DefaultExportBase is the public CSV export endpoint for Google Sheets.
const DefaultExportBase = "https://docs.google.com/spreadsheets/d"

const fetchTimeout = 30 * time.Second

var sheetURLPattern = regexp.MustCompile(`/d/([^/?#]+)`)

// FetchError reports an unreachable or non-public sheet source. The sync
// scheduler swallows these into a boolean; the HTTP handlers surface them as
// an upstream failure.
type FetchError struct {
	SheetID    string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sheet %s: upstream returned status %d", e.SheetID, e.StatusCode)
	}
	return fmt.Sprintf("sheet %s: fetch failed: %v", e.SheetID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseSheetURL extracts the external sheet id from a share URL of the form
// .../d/<id>/... or .../d/<id>.
func ParseSheetURL(url string) (string, error) {
	m := sheetURLPattern.FindStringSubmatch(url)
	if m == nil || m[1] == "" {
		return "", ErrInvalidSheetURL
	}
	return m[1], nil
}

// Fetcher pulls a sheet's CSV export, tokenizes it, and upserts the grid into
// the store. ExportBase is overridable so tests can point it at a local
// server.
type Fetcher struct {
	db         *sql.DB
	client     *http.Client
	logger     *zap.Logger
	ExportBase string
}

func NewFetcher(database *sql.DB, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		db:         database,
		client:     &http.Client{Timeout: fetchTimeout},
		logger:     logger,
		ExportBase: DefaultExportBase,
	}
}

// Sync fetches and stores one sheet, returning the stored result. A fetch
// problem comes back as *FetchError; anything else is a storage failure. The
// previously stored grid is untouched on any failure.
func (f *Fetcher) Sync(ctx context.Context, userID uuid.UUID, sheetID, name string) (*models.ConnectedSheet, error) {
	if name == "" {
		name = defaultSheetName(sheetID)
	}

	// Cache-defeating timestamp forces a fresh export
	url := fmt.Sprintf("%s/%s/export?format=csv&t=%d", f.ExportBase, sheetID, time.Now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{SheetID: sheetID, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{SheetID: sheetID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{SheetID: sheetID, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{SheetID: sheetID, Err: err}
	}

	grid := Tokenize(string(body))

	sheet, err := db.UpsertSheet(f.db, userID, sheetID, name, grid)
	if err != nil {
		return nil, fmt.Errorf("failed to store sheet %s: %w", sheetID, err)
	}

	return sheet, nil
}

// SyncOne is the background-path wrapper around Sync: it never returns an
// error, only success or failure, so a flaky source cannot take down the
// periodic loop.
func (f *Fetcher) SyncOne(ctx context.Context, userID uuid.UUID, sheetID, name string) bool {
	_, err := f.Sync(ctx, userID, sheetID, name)
	if err != nil {
		f.logger.Warn("sheet sync failed",
			zap.String("sheet_id", sheetID),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return false
	}

	f.logger.Debug("sheet synced",
		zap.String("sheet_id", sheetID),
		zap.String("user_id", userID.String()))
	return true
}

func defaultSheetName(sheetID string) string {
	tail := sheetID
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return "Sheet " + tail
}
