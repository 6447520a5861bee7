package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bagrada/mythmeta/internal/api/apierr"
	"github.com/bagrada/mythmeta/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics surface to clients as the standard error envelope with code
// INTERNAL_ERROR; the shared middleware logs the stack.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
