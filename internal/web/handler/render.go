package handler

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/web/middleware"
	"github.com/bagrada/mythmeta/internal/web/templates/layout"
)

// pageData builds the chrome state for the current viewer
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title:   title,
		Session: middleware.GetSession(r.Context()),
		Admin:   middleware.IsAdmin(r.Context()),
		Flash:   middleware.GetFlash(r.Context()),
	}
}

// render writes a component as an HTML response
func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// playerIDVar parses the {id} path variable as a player ID
func playerIDVar(r *http.Request) (model.PlayerID, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return model.PlayerID(id), true
}

// orderIDVar parses the {id} path variable as an order ID
func orderIDVar(r *http.Request) (model.OrderID, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return model.OrderID(id), true
}
