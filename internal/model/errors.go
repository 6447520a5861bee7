package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrLoginTaken     = errors.New("login is already taken")

	// Credential and session errors
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrPlayerBanned        = errors.New("player is banned")
	ErrNotLoggedIn         = errors.New("player is not logged in")
	ErrSessionNotFound     = errors.New("session not found")

	// Capacity errors; truncation of bounded text is policy, never an
	// error, so only fixed-list inserts can fail this way
	ErrBuddyListFull   = errors.New("buddy list is full")
	ErrOrderRosterFull = errors.New("order roster is full")

	// Order errors
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotOrderMember = errors.New("player is not an order member")

	// Ledger errors
	ErrInvalidGameType = errors.New("invalid game type")

	// Authorization errors
	ErrNotAdmin = errors.New("player is not an admin")
)
