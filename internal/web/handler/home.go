package handler

import (
	"net/http"

	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/session"
	"github.com/bagrada/mythmeta/internal/web/templates/pages"
)

// HomeHandler handles the dashboard home page
type HomeHandler struct {
	accountService *account.Service
	sessionService *session.Service
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(accountService *account.Service, sessionService *session.Service) *HomeHandler {
	return &HomeHandler{
		accountService: accountService,
		sessionService: sessionService,
	}
}

// Home renders the dashboard home page with roster counts
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: pageData(r, "Home"),
	}

	// Lookup errors leave the counts at zero
	if players, err := h.accountService.ListPlayers(r.Context()); err == nil {
		data.PlayerCount = len(players)
	}
	if orders, err := h.accountService.ListOrders(r.Context()); err == nil {
		data.OrderCount = len(orders)
	}
	data.OnlineCount = len(h.sessionService.ListOnline())

	render(w, r, pages.Home(data))
}
