package handler

import (
	"net/http"

	"github.com/bagrada/mythmeta/internal/services/session"
	"github.com/bagrada/mythmeta/internal/web/middleware"
	"github.com/bagrada/mythmeta/internal/web/sse"
	"github.com/bagrada/mythmeta/internal/web/templates/pages"
)

// OnlineHandler handles the live sessions page and its event stream
type OnlineHandler struct {
	sessionService *session.Service
	hub            *sse.Hub
}

// NewOnlineHandler creates a new OnlineHandler
func NewOnlineHandler(sessionService *session.Service, hub *sse.Hub) *OnlineHandler {
	return &OnlineHandler{
		sessionService: sessionService,
		hub:            hub,
	}
}

// View renders the online sessions page
func (h *OnlineHandler) View(w http.ResponseWriter, r *http.Request) {
	data := pages.OnlineData{
		PageData: pageData(r, "Online"),
		Sessions: h.sessionService.ListOnline(),
	}
	render(w, r, pages.Online(data))
}

// Events handles the SSE presence stream
func (h *OnlineHandler) Events(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sse.ServeSSE(w, r, h.hub, sess.Login)
}
