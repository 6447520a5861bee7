package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bagrada/mythmeta/internal/api/middleware"
	"github.com/bagrada/mythmeta/internal/api/request"
	"github.com/bagrada/mythmeta/internal/api/response"
	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/ledger"
)

// LedgerHandler handles score reporting and ranking endpoints
type LedgerHandler struct {
	ledgerService *ledger.Service
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// RecordResult handles POST /api/v1/players/me/results
func (h *LedgerHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.RecordResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	standing, ok := parseStanding(req.Standing)
	if !ok {
		WriteError(w, NewInvalidRequestError("standing must be win, loss or tie"))
		return
	}

	opponents := make([]model.PlayerID, len(req.Opponents))
	for i, id := range req.Opponents {
		opponents[i] = model.PlayerID(id)
	}

	result := model.GameResult{
		GameType:        model.GameType(req.GameType),
		Standing:        standing,
		DamageInflicted: req.DamageInflicted,
		DamageReceived:  req.DamageReceived,
		Disconnected:    req.Disconnected,
		PointsDelta:     req.PointsDelta,
		NewRank:         req.NewRank,
		Opponents:       opponents,
	}

	rec, err := h.ledgerService.RecordResult(r.Context(), sess.PlayerID, req.Ranked, result)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(rec))
}

// Recalculate handles POST /api/v1/rankings/recalculate
func (h *LedgerHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerService.AssignNumericalRanks(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// parseStanding maps a standing string to its model value
func parseStanding(s string) (model.GameStanding, bool) {
	switch s {
	case "win":
		return model.StandingWin, true
	case "loss":
		return model.StandingLoss, true
	case "tie":
		return model.StandingTie, true
	default:
		return 0, false
	}
}
