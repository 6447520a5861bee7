package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bagrada/mythmeta/internal/middleware"
)

// Recovery creates panic recovery middleware for the dashboard.
// Panics render as a plain error page; the shared middleware logs the stack.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Error - Myth Metaserver</title></head>
<body>
<h1>Something went wrong</h1>
<p>The metaserver hit an internal error. Please try again.</p>
<p><a href="/">Back to the lobby</a></p>
</body>
</html>`))
}
