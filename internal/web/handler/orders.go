package handler

import (
	"net/http"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/web/middleware"
	"github.com/bagrada/mythmeta/internal/web/templates/pages"
)

// OrdersHandler handles the order listing and detail pages
type OrdersHandler struct {
	accountService *account.Service
}

// NewOrdersHandler creates a new OrdersHandler
func NewOrdersHandler(accountService *account.Service) *OrdersHandler {
	return &OrdersHandler{
		accountService: accountService,
	}
}

// List renders the order listing
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.accountService.ListOrders(r.Context())
	if err != nil {
		middleware.SetFlash(w, "error", "Failed to load orders")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.OrdersData{
		PageData: pageData(r, "Orders"),
		Orders:   orders,
	}
	render(w, r, pages.Orders(data))
}

// Detail renders an order's profile and resolved roster
func (h *OrdersHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDVar(r)
	if !ok {
		middleware.SetFlash(w, "error", "Invalid order ID")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	order, err := h.accountService.GetOrder(r.Context(), id)
	if err != nil {
		middleware.SetFlash(w, "error", "Order not found")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	// Resolve occupied roster slots; members whose records are gone
	// are skipped
	var members []*model.PlayerRecord
	for _, slot := range order.Members {
		if slot.PlayerID == 0 {
			continue
		}
		rec, err := h.accountService.GetPlayer(r.Context(), slot.PlayerID)
		if err != nil {
			continue
		}
		members = append(members, rec)
	}

	data := pages.OrderDetailData{
		PageData: pageData(r, order.Name()),
		Order:    order,
		Members:  members,
	}
	render(w, r, pages.OrderDetail(data))
}
