package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/netip"
	"strconv"

	"github.com/bagrada/mythmeta/internal/api/middleware"
	"github.com/bagrada/mythmeta/internal/api/request"
	"github.com/bagrada/mythmeta/internal/api/response"
	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/session"
)

// PresenceNotifier receives a signal after the online roster changes.
// The web dashboard's SSE broadcaster satisfies it.
type PresenceNotifier interface {
	PresenceChanged(ctx context.Context)
}

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionService *session.Service
	accountService *account.Service
	presence       PresenceNotifier
}

// NewSessionHandler creates a new session handler. presence may be nil
// when no dashboard is attached.
func NewSessionHandler(sessionService *session.Service, accountService *account.Service, presence PresenceNotifier) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		accountService: accountService,
		presence:       presence,
	}
}

func (h *SessionHandler) notifyPresence(ctx context.Context) {
	if h.presence != nil {
		h.presence.PresenceChanged(ctx)
	}
}

// Login handles POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
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

	sess, err := h.sessionService.Login(r.Context(), session.LoginParams{
		Login:      req.Login,
		Password:   req.Password,
		RemoteAddr: remoteAddr(r),
		Version:    req.Version,
		Product:    model.GameTypeFlags(req.Product),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.accountService.GetPlayer(r.Context(), sess.PlayerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.notifyPresence(r.Context())

	response.JSON(w, http.StatusOK, response.LoginResponse{
		SessionToken: sess.Token,
		Session:      response.SessionFromModel(sess),
		Player:       response.PlayerFromModel(rec),
	})
}

// Logout handles POST /api/v1/session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	if err := h.sessionService.Logout(r.Context(), sess.Token); err != nil {
		WriteError(w, err)
		return
	}

	h.notifyPresence(r.Context())

	response.NoContent(w)
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// ListOnline handles GET /api/v1/session/online
func (h *SessionHandler) ListOnline(w http.ResponseWriter, r *http.Request) {
	online := h.sessionService.ListOnline()

	sessions := make([]response.Session, len(online))
	for i, sess := range online {
		sessions[i] = response.SessionFromModel(sess)
	}
	response.JSON(w, http.StatusOK, sessions)
}

// ReadPacked handles GET /api/v1/session/packed.
// The limit query parameter caps the chunk size; the read cursor
// advances so repeated calls walk the whole buffer.
func (h *SessionHandler) ReadPacked(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	limit := model.PackedPlayerDataSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	chunk, err := h.sessionService.ReadPackedChunk(sess.Token, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Binary(w, http.StatusOK, chunk)
}

// ResetPacked handles POST /api/v1/session/packed/reset
func (h *SessionHandler) ResetPacked(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	if err := h.sessionService.ResetPackedCursor(sess.Token); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Refresh handles POST /api/v1/session/refresh.
// Re-encodes the packed buffer from the current player record.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	if err := h.sessionService.RefreshPacked(r.Context(), sess.Token); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// UpdateRoom handles PUT /api/v1/session/room
func (h *SessionHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.sessionService.UpdateRoom(r.Context(), sess.Token, req.RoomID); err != nil {
		WriteError(w, err)
		return
	}

	h.notifyPresence(r.Context())

	response.NoContent(w)
}

// MintHandoff handles POST /api/v1/session/handoff
func (h *SessionHandler) MintHandoff(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	token, err := h.sessionService.MintHandoff(sess.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.HandoffResponse{Token: token})
}

// RedeemHandoff handles POST /api/v1/session/handoff/redeem.
// Room servers present the handoff token in place of credentials; it
// is consumed on first use.
func (h *SessionHandler) RedeemHandoff(w http.ResponseWriter, r *http.Request) {
	var req request.RedeemHandoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Token == "" {
		WriteError(w, NewInvalidRequestError("token is required"))
		return
	}

	sess, err := h.sessionService.RedeemHandoff(req.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// remoteAddr parses the request's remote address, dropping the port
func remoteAddr(r *http.Request) netip.Addr {
	addrPort, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil {
		return netip.Addr{}
	}
	return addrPort.Addr()
}
