package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/account"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotAdmin           = "NOT_ADMIN"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeOrderNotFound      = "ORDER_NOT_FOUND"
	CodeLoginTaken         = "LOGIN_TAKEN"
	CodeOrderNameTaken     = "ORDER_NAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodePlayerBanned       = "PLAYER_BANNED"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeNotLoggedIn        = "NOT_LOGGED_IN"
	CodeBuddyListFull      = "BUDDY_LIST_FULL"
	CodeOrderRosterFull    = "ORDER_ROSTER_FULL"
	CodeNotOrderMember     = "NOT_ORDER_MEMBER"
	CodeInvalidGameType    = "INVALID_GAME_TYPE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrOrderNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeOrderNotFound, "Order not found"}}
	case errors.Is(err, model.ErrLoginTaken):
		return &httpError{http.StatusConflict, APIError{CodeLoginTaken, "Login already exists"}}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid login or password"}}
	case errors.Is(err, model.ErrCredentialsNotFound):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid login or password"}}
	case errors.Is(err, model.ErrPlayerBanned):
		return &httpError{http.StatusForbidden, APIError{CodePlayerBanned, "Player is banned"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusUnauthorized, APIError{CodeSessionNotFound, "Invalid or expired session"}}
	case errors.Is(err, model.ErrNotLoggedIn):
		return &httpError{http.StatusNotFound, APIError{CodeNotLoggedIn, "Player is not logged in"}}
	case errors.Is(err, model.ErrBuddyListFull):
		return &httpError{http.StatusConflict, APIError{CodeBuddyListFull, "Buddy list is full"}}
	case errors.Is(err, model.ErrOrderRosterFull):
		return &httpError{http.StatusConflict, APIError{CodeOrderRosterFull, "Order roster is full"}}
	case errors.Is(err, model.ErrNotOrderMember):
		return &httpError{http.StatusConflict, APIError{CodeNotOrderMember, "Player is not an order member"}}
	case errors.Is(err, model.ErrInvalidGameType):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameType, "Unknown game type"}}
	case errors.Is(err, model.ErrNotAdmin):
		return &httpError{http.StatusForbidden, APIError{CodeNotAdmin, "Admin privileges required"}}

	// Map account service errors
	case errors.Is(err, account.ErrEmptyLogin):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Login must not be empty"}}
	case errors.Is(err, account.ErrEmptyOrderName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Order name must not be empty"}}
	case errors.Is(err, account.ErrOrderNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeOrderNameTaken, "Order name already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewNotAdminError creates a forbidden error for non-admin callers
func NewNotAdminError() error {
	return &httpError{http.StatusForbidden, APIError{CodeNotAdmin, "Admin privileges required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
