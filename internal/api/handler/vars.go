package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bagrada/mythmeta/internal/model"
)

// playerIDVar parses the {id} path variable as a player ID
func playerIDVar(r *http.Request) (model.PlayerID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, NewInvalidRequestError("invalid player id")
	}
	return model.PlayerID(id), nil
}

// orderIDVar parses the {id} path variable as an order ID
func orderIDVar(r *http.Request) (model.OrderID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, NewInvalidRequestError("invalid order id")
	}
	return model.OrderID(id), nil
}
