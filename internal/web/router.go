package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/session"
	"github.com/bagrada/mythmeta/internal/web/handler"
	"github.com/bagrada/mythmeta/internal/web/middleware"
	"github.com/bagrada/mythmeta/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	SessionService *session.Service
	Hub            *sse.Hub
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.SessionService, cfg.AccountService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.SessionService, cfg.AccountService)
	adminMiddleware := middleware.RequireAdmin()

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create SSE presence hub if not provided
	hub := cfg.Hub
	if hub == nil {
		hub = sse.NewHub(cfg.Logger)
		go hub.Run()
	}
	broadcaster := sse.NewBroadcaster(hub, cfg.SessionService, cfg.Logger)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.AccountService, cfg.SessionService)
	authHandler := handler.NewAuthHandler(cfg.SessionService, broadcaster)
	playersHandler := handler.NewPlayersHandler(cfg.AccountService, cfg.SessionService)
	ordersHandler := handler.NewOrdersHandler(cfg.AccountService)
	onlineHandler := handler.NewOnlineHandler(cfg.SessionService, hub)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing viewer info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require auth)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)

	protected.HandleFunc("/players", playersHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/players/{id}", playersHandler.Detail).Methods(http.MethodGet)
	protected.HandleFunc("/orders", ordersHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id}", ordersHandler.Detail).Methods(http.MethodGet)
	protected.HandleFunc("/online", onlineHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/online/events", onlineHandler.Events).Methods(http.MethodGet)

	// Moderation routes (require admin)
	moderation := r.NewRoute().Subrouter()
	moderation.Use(flashMiddleware)
	moderation.Use(authMiddleware)
	moderation.Use(adminMiddleware)
	moderation.HandleFunc("/players/{id}/ban", playersHandler.Ban).Methods(http.MethodPost)
	moderation.HandleFunc("/players/{id}/unban", playersHandler.Unban).Methods(http.MethodPost)

	return r
}
