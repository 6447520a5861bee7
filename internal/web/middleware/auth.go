package middleware

import (
	"context"
	"net/http"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/session"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	recordContextKey  contextKey = "record"
)

// GetSession retrieves the viewer's session from the request context.
// Returns nil if not logged in.
func GetSession(ctx context.Context) *model.OnlineSession {
	sess, _ := ctx.Value(sessionContextKey).(*model.OnlineSession)
	return sess
}

// GetRecord retrieves the viewer's player record from the request
// context. Returns nil if not logged in.
func GetRecord(ctx context.Context) *model.PlayerRecord {
	rec, _ := ctx.Value(recordContextKey).(*model.PlayerRecord)
	return rec
}

// IsAdmin reports whether the viewer's record carries the admin flag
func IsAdmin(ctx context.Context) bool {
	rec := GetRecord(ctx)
	return rec != nil && rec.Flags.IsAdmin()
}

// Auth returns middleware that requires a logged-in session.
// Redirects to the login page if not authenticated.
func Auth(sessionService *session.Service, accountService *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, rec := viewerFromCookie(r, sessionService, accountService)
			if sess == nil {
				// SSE consumers cannot follow a login redirect
				if r.Header.Get("Accept") == "text/event-stream" {
					http.Error(w, "authentication required", http.StatusUnauthorized)
					return
				}

				// Store original URL to redirect back after auth
				redirectURL := "/login?next=" + r.URL.Path
				http.Redirect(w, r, redirectURL, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			ctx = context.WithValue(ctx, recordContextKey, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but
// doesn't require it
func OptionalAuth(sessionService *session.Service, accountService *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, rec := viewerFromCookie(r, sessionService, accountService)
			ctx := r.Context()
			if sess != nil {
				ctx = context.WithValue(ctx, sessionContextKey, sess)
				ctx = context.WithValue(ctx, recordContextKey, rec)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns middleware that rejects non-admin viewers.
// Requires Auth to be applied first.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdmin(r.Context()) {
				SetFlash(w, "error", "Admin privileges required")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func viewerFromCookie(r *http.Request, sessionService *session.Service, accountService *account.Service) (*model.OnlineSession, *model.PlayerRecord) {
	cookie, err := r.Cookie("session")
	if err != nil {
		return nil, nil
	}

	sess, err := sessionService.Validate(cookie.Value)
	if err != nil {
		return nil, nil
	}

	rec, err := accountService.GetPlayer(r.Context(), sess.PlayerID)
	if err != nil {
		return nil, nil
	}

	return sess, rec
}
