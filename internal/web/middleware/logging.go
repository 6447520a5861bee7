package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bagrada/mythmeta/internal/middleware"
)

// Logging creates logging middleware for the dashboard.
// Static asset requests are not logged to keep the request log readable.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	base := middleware.Logging(logger)
	return func(next http.Handler) http.Handler {
		logged := base(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}
