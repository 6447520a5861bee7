package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bagrada/mythmeta/internal/api/middleware"
	"github.com/bagrada/mythmeta/internal/api/request"
	"github.com/bagrada/mythmeta/internal/api/response"
	"github.com/bagrada/mythmeta/internal/codec"
	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/account"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	accountService *account.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(accountService *account.Service) *PlayerHandler {
	return &PlayerHandler{
		accountService: accountService,
	}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Login == "" {
		WriteError(w, NewInvalidRequestError("login is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	rec, err := h.accountService.CreateAccount(r.Context(), req.Login, req.Password, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(rec))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.accountService.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	players := make([]response.Player, len(recs))
	for i, rec := range recs {
		players[i] = response.PlayerFromModel(rec)
	}
	response.JSON(w, http.StatusOK, players)
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.accountService.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	rec, err := h.accountService.GetPlayer(r.Context(), sess.PlayerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// UpdateProfile handles PATCH /api/v1/players/me
func (h *PlayerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	update := account.ProfileUpdate{
		Name:               req.Name,
		TeamName:           req.TeamName,
		Description:        req.Description,
		IconIndex:          req.IconIndex,
		IconCollectionName: req.IconCollectionName,
		PrimaryColor:       colorFromRequest(req.PrimaryColor),
		SecondaryColor:     colorFromRequest(req.SecondaryColor),
		CountryCode:        req.CountryCode,
	}

	rec, err := h.accountService.UpdateProfile(r.Context(), sess.PlayerID, update)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// ChangePassword handles PUT /api/v1/players/me/password
func (h *PlayerHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	if err := h.accountService.ChangePassword(r.Context(), sess.PlayerID, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddBuddy handles PUT /api/v1/players/me/buddies/{id}
func (h *PlayerHandler) AddBuddy(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	buddyID, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.accountService.AddBuddy(r.Context(), sess.PlayerID, buddyID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// RemoveBuddy handles DELETE /api/v1/players/me/buddies/{id}
func (h *PlayerHandler) RemoveBuddy(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	buddyID, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.accountService.RemoveBuddy(r.Context(), sess.PlayerID, buddyID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// Ban handles POST /api/v1/players/{id}/ban
func (h *PlayerHandler) Ban(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Empty body means an indefinite ban
		req = request.BanRequest{}
	}
	if req.DurationSeconds < 0 {
		WriteError(w, NewInvalidRequestError("duration_seconds must not be negative"))
		return
	}

	rec, err := h.accountService.Ban(r.Context(), id, time.Duration(req.DurationSeconds)*time.Second)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// Unban handles DELETE /api/v1/players/{id}/ban
func (h *PlayerHandler) Unban(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.accountService.Unban(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// GetDocument handles GET /api/v1/players/{id}/document. The document
// is the record's full structured form, password secret included, so
// the route stays behind the admin guard.
func (h *PlayerHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.accountService.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, codec.PlayerToDocument(rec))
}

// SetAdmin handles PUT /api/v1/players/{id}/admin
func (h *PlayerHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SetAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	rec, err := h.accountService.SetAdmin(r.Context(), id, req.Admin)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// colorFromRequest converts an optional request color to a model color
func colorFromRequest(c *request.Color) *model.RGBColor {
	if c == nil {
		return nil
	}
	return &model.RGBColor{
		Red:   c.Red,
		Green: c.Green,
		Blue:  c.Blue,
		Flags: c.Flags,
	}
}
