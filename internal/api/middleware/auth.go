package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bagrada/mythmeta/internal/api/apierr"
	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Auth creates authentication middleware
func Auth(sessionService *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			sess, err := sessionService.Validate(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose player record lacks the admin
// flag. Must run inside Auth.
func RequireAdmin(accountService *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			if sess == nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			rec, err := accountService.GetPlayer(r.Context(), sess.PlayerID)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			if !rec.Flags.IsAdmin() {
				apierr.WriteError(w, apierr.NewNotAdminError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *model.OnlineSession {
	sess, _ := ctx.Value(sessionContextKey).(*model.OnlineSession)
	return sess
}

// MustGetSession returns the session or panics
func MustGetSession(ctx context.Context) *model.OnlineSession {
	sess := GetSession(ctx)
	if sess == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return sess
}
