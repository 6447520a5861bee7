package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/session"
	"github.com/bagrada/mythmeta/internal/web/middleware"
	"github.com/bagrada/mythmeta/internal/web/templates/pages"
)

// PlayersHandler handles the roster and player detail pages
type PlayersHandler struct {
	accountService *account.Service
	sessionService *session.Service
}

// NewPlayersHandler creates a new PlayersHandler
func NewPlayersHandler(accountService *account.Service, sessionService *session.Service) *PlayersHandler {
	return &PlayersHandler{
		accountService: accountService,
		sessionService: sessionService,
	}
}

// List renders the player roster
func (h *PlayersHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.accountService.ListPlayers(r.Context())
	if err != nil {
		middleware.SetFlash(w, "error", "Failed to load players")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.PlayersData{
		PageData: pageData(r, "Players"),
		Players:  players,
	}
	render(w, r, pages.Players(data))
}

// Detail renders a single player's profile and scores
func (h *PlayersHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDVar(r)
	if !ok {
		middleware.SetFlash(w, "error", "Invalid player ID")
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}

	player, err := h.accountService.GetPlayer(r.Context(), id)
	if err != nil {
		middleware.SetFlash(w, "error", "Player not found")
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}

	data := pages.PlayerDetailData{
		PageData: pageData(r, player.Name()),
		Player:   player,
	}

	if player.OrderIndex != 0 {
		// Missing orders leave the section blank
		data.Order, _ = h.accountService.GetOrder(r.Context(), model.OrderID(player.OrderIndex))
	}
	if _, err := h.sessionService.GetByPlayer(id); err == nil {
		data.Online = true
	}

	render(w, r, pages.PlayerDetail(data))
}

// Ban handles the moderation form on the player detail page
func (h *PlayersHandler) Ban(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDVar(r)
	if !ok {
		middleware.SetFlash(w, "error", "Invalid player ID")
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/players/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
		return
	}

	// duration_hours of zero means an indefinite ban
	hours, err := strconv.Atoi(r.FormValue("duration_hours"))
	if err != nil || hours < 0 {
		middleware.SetFlash(w, "error", "Invalid ban duration")
		http.Redirect(w, r, "/players/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
		return
	}

	if _, err := h.accountService.Ban(r.Context(), id, time.Duration(hours)*time.Hour); err != nil {
		middleware.SetFlash(w, "error", "Failed to ban player")
		http.Redirect(w, r, "/players/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Player banned")
	http.Redirect(w, r, "/players/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
}

// Unban lifts a ban from the player detail page
func (h *PlayersHandler) Unban(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDVar(r)
	if !ok {
		middleware.SetFlash(w, "error", "Invalid player ID")
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}

	if _, err := h.accountService.Unban(r.Context(), id); err != nil {
		middleware.SetFlash(w, "error", "Failed to lift ban")
		http.Redirect(w, r, "/players/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Ban lifted")
	http.Redirect(w, r, "/players/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
}
