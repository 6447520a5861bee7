package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bagrada/mythmeta/internal/api/middleware"
	"github.com/bagrada/mythmeta/internal/api/request"
	"github.com/bagrada/mythmeta/internal/api/response"
	"github.com/bagrada/mythmeta/internal/services/account"
)

// OrderHandler handles order (clan) endpoints
type OrderHandler struct {
	accountService *account.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(accountService *account.Service) *OrderHandler {
	return &OrderHandler{
		accountService: accountService,
	}
}

// Create handles POST /api/v1/orders.
// The authenticated player becomes the founding member.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	order, err := h.accountService.CreateOrder(r.Context(), req.Name, req.MemberPassword, req.MaintenancePassword, sess.PlayerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.OrderFromModel(order))
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.accountService.ListOrders(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Order, len(orders))
	for i, o := range orders {
		out[i] = response.OrderFromModel(o)
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := orderIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.accountService.GetOrder(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OrderFromModel(order))
}

// Join handles POST /api/v1/orders/{id}/join
func (h *OrderHandler) Join(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	id, err := orderIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.JoinOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for orders without a member password
		req = request.JoinOrderRequest{}
	}

	order, err := h.accountService.JoinOrder(r.Context(), sess.PlayerID, id, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OrderFromModel(order))
}

// Leave handles POST /api/v1/orders/leave
func (h *OrderHandler) Leave(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	if err := h.accountService.LeaveOrder(r.Context(), sess.PlayerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
