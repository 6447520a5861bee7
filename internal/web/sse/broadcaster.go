package sse

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/web/templates/components"
)

// SessionLister provides the current set of online sessions
type SessionLister interface {
	ListOnline() []*model.OnlineSession
}

// Broadcaster pushes presence updates to SSE clients whenever the
// online roster changes
type Broadcaster struct {
	hub      *Hub
	sessions SessionLister
	logger   *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, sessions SessionLister, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		sessions: sessions,
		logger:   logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// PresenceChanged re-renders the sessions table and broadcasts it to
// every connected client. Called after any login, logout or room move.
func (b *Broadcaster) PresenceChanged(ctx context.Context) {
	var buf bytes.Buffer
	if err := components.SessionsTable(b.sessions.ListOnline()).Render(ctx, &buf); err != nil {
		b.logger.Error("sse failed to render sessions table", slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent("presence-update", buf.String())
}
