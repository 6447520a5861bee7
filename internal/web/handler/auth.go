package handler

import (
	"errors"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/session"
	"github.com/bagrada/mythmeta/internal/web/middleware"
	"github.com/bagrada/mythmeta/internal/web/sse"
	"github.com/bagrada/mythmeta/internal/web/templates/pages"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	sessionService *session.Service
	broadcaster    *sse.Broadcaster
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(sessionService *session.Service, broadcaster *sse.Broadcaster) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		broadcaster:    broadcaster,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		// Already logged in, redirect to home
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.LoginData{
		PageData: pageData(r, "Login"),
		Next:     r.URL.Query().Get("next"),
	}
	render(w, r, pages.Login(data))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "", "")
		return
	}

	login := strings.TrimSpace(r.FormValue("login"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if login == "" || password == "" {
		h.renderLoginError(w, r, "Login and password are required", login, next)
		return
	}

	sess, err := h.sessionService.Login(r.Context(), session.LoginParams{
		Login:      login,
		Password:   password,
		RemoteAddr: formRemoteAddr(r),
	})
	if err != nil {
		msg := "Invalid login or password"
		if errors.Is(err, model.ErrPlayerBanned) {
			msg = "This account is banned"
		}
		h.renderLoginError(w, r, msg, login, next)
		return
	}

	h.setSessionCookie(w, sess.Token)
	middleware.SetFlash(w, "success", "Welcome back, "+sess.Name+"!")
	h.broadcaster.PresenceChanged(r.Context())

	// Redirect to original destination or home
	if next != "" && strings.HasPrefix(next, "/") {
		http.Redirect(w, r, next, http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session"); err == nil {
		if err := h.sessionService.Logout(r.Context(), cookie.Value); err == nil {
			h.broadcaster.PresenceChanged(r.Context())
		}
	}

	// Clear session cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		MaxAge:   86400, // sessions expire server side after a day
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, login, next string) {
	data := pages.LoginData{
		PageData: pageData(r, "Login"),
		Login:    login,
		Error:    errorMsg,
		Next:     next,
	}
	render(w, r, pages.Login(data))
}

func formRemoteAddr(r *http.Request) netip.Addr {
	addrPort, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil {
		return netip.Addr{}
	}
	return addrPort.Addr()
}
