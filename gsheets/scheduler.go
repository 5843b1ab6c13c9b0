// ABOUTME: Periodic re-sync loop for connected sheets
// ABOUTME: Owns an explicit arm/disarm lifecycle around a single 60s ticker
package gsheets

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tablerohq/tablero/db"
)

// DefaultSyncInterval is how often armed sheets are refreshed.
const DefaultSyncInterval = 60 * time.Second

// Scheduler re-syncs every connected sheet on a fixed interval. It is armed
// while at least one sheet is connected and disarmed when the last one goes
// away. Arm and Disarm are idempotent; arming twice never stacks a second
// ticker. Overlapping syncs of the same key are allowed and resolved by the
// store's atomic upsert, not by the scheduler.
type Scheduler struct {
	db       *sql.DB
	fetcher  *Fetcher
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(database *sql.DB, fetcher *Fetcher, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		db:       database,
		fetcher:  fetcher,
		interval: interval,
		logger:   logger,
	}
}

// Arm starts the periodic loop. A no-op when already running.
func (s *Scheduler) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	s.logger.Info("sync scheduler armed", zap.Duration("interval", s.interval))
	go s.run(ctx, s.done)
}

// Disarm stops the loop and waits for the current tick, if any, to finish.
// A no-op when not running.
func (s *Scheduler) Disarm() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	s.logger.Info("sync scheduler disarmed")
}

// Armed reports whether the periodic loop is running.
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncAll(ctx)
		}
	}
}

// SyncAll refreshes every connected sheet of every user once. Individual
// failures are logged and skipped; one dead source never starves the rest.
func (s *Scheduler) SyncAll(ctx context.Context) {
	sheets, err := db.ListAllSheets(s.db)
	if err != nil {
		s.logger.Error("failed to list sheets for sync", zap.Error(err))
		return
	}

	for _, sheet := range sheets {
		if ctx.Err() != nil {
			return
		}
		s.fetcher.SyncOne(ctx, sheet.UserID, sheet.SheetID, sheet.Name)
	}
}
