// ABOUTME: HTTP API server wiring routes, auth middleware, and the sync scheduler
// ABOUTME: Serves the JSON backend consumed by the dashboard UI
package web

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"github.com/tablerohq/tablero/auth"
	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/gsheets"
	"github.com/tablerohq/tablero/handlers"
)

type Server struct {
	db        *sql.DB
	sessions  *auth.SessionStore
	scheduler *gsheets.Scheduler
	logger    *zap.Logger
	mux       *http.ServeMux
}

func NewServer(database *sql.DB, sessions *auth.SessionStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	fetcher := gsheets.NewFetcher(database, logger)
	scheduler := gsheets.NewScheduler(database, fetcher, gsheets.DefaultSyncInterval, logger)

	s := &Server{
		db:        database,
		sessions:  sessions,
		scheduler: scheduler,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	authH := handlers.NewAuthHandlers(database, sessions)
	contacts := handlers.NewContactHandlers(database)
	sheets := handlers.NewSheetHandlers(database, fetcher, scheduler, logger)
	habits := handlers.NewHabitHandlers(database)
	plans := handlers.NewBattlePlanHandlers(database)

	s.mux.HandleFunc("POST /api/auth/login", authH.Login)

	s.mux.HandleFunc("GET /api/contacts", s.requireAuth(contacts.List))
	s.mux.HandleFunc("POST /api/contacts", s.requireAuth(contacts.Create))
	s.mux.HandleFunc("POST /api/contacts/import", s.requireAuth(contacts.Import))
	s.mux.HandleFunc("PATCH /api/contacts/{id}", s.requireAuth(contacts.UpdateNotes))
	s.mux.HandleFunc("DELETE /api/contacts/{id}", s.requireAuth(contacts.Delete))

	s.mux.HandleFunc("GET /api/sheets", s.requireAuth(sheets.List))
	s.mux.HandleFunc("POST /api/sheets", s.requireAuth(sheets.Connect))
	s.mux.HandleFunc("POST /api/sheets/{sheetId}/sync", s.requireAuth(sheets.Sync))
	s.mux.HandleFunc("DELETE /api/sheets/{sheetId}", s.requireAuth(sheets.Delete))

	s.mux.HandleFunc("GET /api/habits", s.requireAuth(habits.List))
	s.mux.HandleFunc("POST /api/habits", s.requireAuth(habits.Create))
	s.mux.HandleFunc("GET /api/habits/{id}", s.requireAuth(habits.Get))
	s.mux.HandleFunc("PATCH /api/habits/{id}", s.requireAuth(habits.Update))
	s.mux.HandleFunc("DELETE /api/habits/{id}", s.requireAuth(habits.Delete))

	s.mux.HandleFunc("GET /api/battleplans", s.requireAuth(plans.List))
	s.mux.HandleFunc("POST /api/battleplans", s.requireAuth(plans.Upsert))

	return s
}

// Handler exposes the routed mux; tests drive it directly.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Scheduler exposes the periodic sync loop so the CLI can arm it on boot
// when sheets are already connected.
func (s *Server) Scheduler() *gsheets.Scheduler {
	return s.scheduler
}

// Start arms the scheduler when sheets already exist, then blocks serving
// HTTP until the listener fails.
func (s *Server) Start(addr string) error {
	count, err := db.CountSheets(s.db)
	if err != nil {
		return err
	}
	if count > 0 {
		s.scheduler.Arm()
	}

	s.logger.Info("starting API server", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

// Shutdown stops the background sync loop.
func (s *Server) Shutdown() {
	s.scheduler.Disarm()
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserFromRequest(s.sessions, r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		next(w, handlers.WithUserID(r, userID))
	}
}
