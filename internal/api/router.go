package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bagrada/mythmeta/internal/api/handler"
	"github.com/bagrada/mythmeta/internal/api/middleware"
	"github.com/bagrada/mythmeta/internal/api/response"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/ledger"
	"github.com/bagrada/mythmeta/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	SessionService *session.Service
	LedgerService  *ledger.Service
	// Presence is notified after logins, logouts and room moves.
	// Optional; the daemon points it at the dashboard's SSE broadcaster.
	Presence handler.PresenceNotifier
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AccountService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionService, cfg.AccountService, cfg.Presence)
	orderHandler := handler.NewOrderHandler(cfg.AccountService)
	ledgerHandler := handler.NewLedgerHandler(cfg.LedgerService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.SessionService)
	adminMiddleware := middleware.RequireAdmin(cfg.AccountService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Public routes (account creation, login, room server handoff)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/session/login", sessionHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/session/handoff/redeem", sessionHandler.RedeemHandoff).Methods(http.MethodPost)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/session").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/logout", sessionHandler.Logout).Methods(http.MethodPost)
	sessions.HandleFunc("/online", sessionHandler.ListOnline).Methods(http.MethodGet)
	sessions.HandleFunc("/packed", sessionHandler.ReadPacked).Methods(http.MethodGet)
	sessions.HandleFunc("/packed/reset", sessionHandler.ResetPacked).Methods(http.MethodPost)
	sessions.HandleFunc("/refresh", sessionHandler.Refresh).Methods(http.MethodPost)
	sessions.HandleFunc("/room", sessionHandler.UpdateRoom).Methods(http.MethodPut)
	sessions.HandleFunc("/handoff", sessionHandler.MintHandoff).Methods(http.MethodPost)

	// Protected player routes; /me must register before /{id}
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	players.HandleFunc("/me", playerHandler.UpdateProfile).Methods(http.MethodPatch)
	players.HandleFunc("/me/password", playerHandler.ChangePassword).Methods(http.MethodPut)
	players.HandleFunc("/me/buddies/{id}", playerHandler.AddBuddy).Methods(http.MethodPut)
	players.HandleFunc("/me/buddies/{id}", playerHandler.RemoveBuddy).Methods(http.MethodDelete)
	players.HandleFunc("/me/results", ledgerHandler.RecordResult).Methods(http.MethodPost)
	players.HandleFunc("/{id}", playerHandler.Get).Methods(http.MethodGet)

	// Moderation routes (require admin); unmatched paths fall through
	// from the subrouter above
	moderation := api.PathPrefix("/players").Subrouter()
	moderation.Use(authMiddleware)
	moderation.Use(adminMiddleware)
	moderation.HandleFunc("/{id}/ban", playerHandler.Ban).Methods(http.MethodPost)
	moderation.HandleFunc("/{id}/ban", playerHandler.Unban).Methods(http.MethodDelete)
	moderation.HandleFunc("/{id}/admin", playerHandler.SetAdmin).Methods(http.MethodPut)
	moderation.HandleFunc("/{id}/document", playerHandler.GetDocument).Methods(http.MethodGet)

	// Order routes (all require auth)
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(authMiddleware)
	orders.HandleFunc("", orderHandler.Create).Methods(http.MethodPost)
	orders.HandleFunc("", orderHandler.List).Methods(http.MethodGet)
	orders.HandleFunc("/leave", orderHandler.Leave).Methods(http.MethodPost)
	orders.HandleFunc("/{id}", orderHandler.Get).Methods(http.MethodGet)
	orders.HandleFunc("/{id}/join", orderHandler.Join).Methods(http.MethodPost)

	// Ranking routes (require admin)
	rankings := api.PathPrefix("/rankings").Subrouter()
	rankings.Use(authMiddleware)
	rankings.Use(adminMiddleware)
	rankings.HandleFunc("/recalculate", ledgerHandler.Recalculate).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler(cfg.SessionService)).Methods(http.MethodGet)

	return r
}

func healthHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, struct {
			Status        string `json:"status"`
			PlayersOnline int    `json:"players_online"`
		}{
			Status:        "ok",
			PlayersOnline: len(sessions.ListOnline()),
		})
	}
}
