package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/netip"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bagrada/mythmeta/internal/codec"
	"github.com/bagrada/mythmeta/internal/dependencies/clock"
	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/storage"
)

// Service tracks online sessions. A session is created at login and
// destroyed at logout; nothing here is persisted. Durable login side
// effects (last login IP/time, product flags, roster presence) land on
// the records through storage.
type Service struct {
	accounts *account.Service
	storage  storage.Storage
	clock    clock.Clock
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*model.OnlineSession
	byPlayer map[model.PlayerID]string
	handoffs map[string]string
	// lastIndex is the most recently assigned DataIndex; indexes are
	// never reused within a process lifetime.
	lastIndex int32

	sessionDuration time.Duration
}

// Config holds configuration for the session service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new session Service
func New(accounts *account.Service, storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		accounts:        accounts,
		storage:         storage,
		clock:           clock,
		logger:          logger,
		sessions:        make(map[string]*model.OnlineSession),
		byPlayer:        make(map[model.PlayerID]string),
		handoffs:        make(map[string]string),
		sessionDuration: cfg.SessionDuration,
	}
}

// LoginParams carries what the client presents at login
type LoginParams struct {
	Login    string
	Password string
	// RemoteAddr becomes the record's last login IP when valid.
	RemoteAddr netip.Addr
	// Version is the client build number (2150 for Myth II 1.5.0).
	Version int32
	// Product is the client's product bit, folded into the record's
	// game type flags.
	Product model.GameTypeFlags
}

// Login authenticates the player and creates an online session. The
// record's login metadata is updated and the packed buffer cache is
// filled from the fresh record. A second login for the same player
// replaces the first session.
func (s *Service) Login(ctx context.Context, params LoginParams) (*model.OnlineSession, error) {
	rec, err := s.accounts.Authenticate(ctx, params.Login, params.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rec.LastLoginTime = now
	if params.RemoteAddr.IsValid() {
		rec.LastLoginIP = params.RemoteAddr
	}
	if params.Product != 0 {
		rec.Aux.GameTypeFlags = rec.Aux.GameTypeFlags.With(params.Product)
	}
	if params.Version > rec.Aux.BuildVersion {
		rec.Aux.BuildVersion = params.Version
	}

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}
	if rec.OrderIndex != 0 {
		if err := s.setRosterPresence(ctx, rec, true); err != nil {
			return nil, err
		}
	}

	packed := codec.EncodePackedPlayer(packedView(rec, params.Version))

	s.mu.Lock()
	if old, ok := s.byPlayer[rec.ID]; ok {
		s.dropLocked(old)
	}
	s.lastIndex++
	sess := &model.OnlineSession{
		DataIndex:  s.lastIndex,
		PlayerID:   rec.ID,
		Login:      rec.Login(),
		Name:       rec.Name(),
		RoomID:     rec.RoomID,
		OrderID:    model.OrderID(rec.OrderIndex),
		OrderIndex: rec.OrderIndex,
		LoggedIn:   true,
		PackedData: packed,
		Version:    params.Version,
		Token:      generateToken(),
		LoggedInAt: now,
	}
	s.sessions[sess.Token] = sess
	s.byPlayer[rec.ID] = sess.Token
	s.mu.Unlock()

	s.logger.Info("player logged in",
		slog.Int("player_id", int(rec.ID)),
		slog.String("login", rec.Login()),
		slog.Int("data_index", int(sess.DataIndex)),
		slog.Int("version", int(params.Version)),
	)

	out := *sess
	return &out, nil
}

// Logout destroys the session and marks the player offline on their
// order roster
func (s *Service) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	if ok {
		s.dropLocked(token)
	}
	s.mu.Unlock()
	if !ok {
		return model.ErrSessionNotFound
	}

	s.logger.Info("player logged out",
		slog.Int("player_id", int(sess.PlayerID)),
		slog.String("login", sess.Login),
	)

	if sess.OrderIndex == 0 {
		return nil
	}
	rec, err := s.storage.GetPlayer(ctx, sess.PlayerID)
	if err != nil {
		return err
	}
	return s.setRosterPresence(ctx, rec, false)
}

// Validate checks a session token and returns a snapshot of the session
func (s *Service) Validate(token string) (*model.OnlineSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	if s.clock.Now().After(sess.LoggedInAt.Add(s.sessionDuration)) {
		s.mu.Lock()
		s.dropLocked(token)
		s.mu.Unlock()
		return nil, model.ErrSessionNotFound
	}

	out := *sess
	return &out, nil
}

// GetByPlayer returns the active session for a player, if any
func (s *Service) GetByPlayer(id model.PlayerID) (*model.OnlineSession, error) {
	s.mu.RLock()
	token, ok := s.byPlayer[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrNotLoggedIn
	}
	return s.Validate(token)
}

// ListOnline returns a snapshot of every live session in login order
func (s *Service) ListOnline() []*model.OnlineSession {
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.OnlineSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if now.After(sess.LoggedInAt.Add(s.sessionDuration)) {
			continue
		}
		copied := *sess
		out = append(out, &copied)
	}
	sortSessions(out)
	return out
}

// MintHandoff issues a room-server handoff token for the session. Any
// previously minted token for the session is invalidated.
func (s *Service) MintHandoff(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return "", model.ErrSessionNotFound
	}

	if sess.HandoffToken != "" {
		delete(s.handoffs, sess.HandoffToken)
	}
	handoff := uuid.NewString()
	sess.HandoffToken = handoff
	s.handoffs[handoff] = token
	return handoff, nil
}

// RedeemHandoff consumes a handoff token and returns the session it was
// minted for. A token redeems exactly once.
func (s *Service) RedeemHandoff(handoff string) (*model.OnlineSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.handoffs[handoff]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	delete(s.handoffs, handoff)

	sess, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess.HandoffToken = ""

	out := *sess
	return &out, nil
}

// ReadPackedChunk returns up to n bytes of the cached packed buffer
// from the session's cursor and advances it. An empty chunk means the
// cursor is at the end.
func (s *Service) ReadPackedChunk(token string, n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	if n <= 0 || sess.BufferPos >= len(sess.PackedData) {
		return nil, nil
	}
	end := sess.BufferPos + n
	if end > len(sess.PackedData) {
		end = len(sess.PackedData)
	}
	chunk := make([]byte, end-sess.BufferPos)
	copy(chunk, sess.PackedData[sess.BufferPos:end])
	sess.BufferPos = end
	return chunk, nil
}

// ResetPackedCursor rewinds the session's packed buffer cursor
func (s *Service) ResetPackedCursor(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return model.ErrSessionNotFound
	}
	sess.BufferPos = 0
	return nil
}

// RefreshPacked re-encodes the packed buffer cache from the current
// record. Call after anything that changes the record's wire-visible
// fields. The cursor rewinds so readers see the new buffer from the
// start.
func (s *Service) RefreshPacked(ctx context.Context, token string) error {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return model.ErrSessionNotFound
	}

	rec, err := s.storage.GetPlayer(ctx, sess.PlayerID)
	if err != nil {
		return err
	}
	packed := codec.EncodePackedPlayer(packedView(rec, sess.Version))

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check: the session may have been dropped during the load.
	sess, ok = s.sessions[token]
	if !ok {
		return model.ErrSessionNotFound
	}
	sess.PackedData = packed
	sess.BufferPos = 0
	sess.Login = rec.Login()
	sess.Name = rec.Name()
	sess.OrderID = model.OrderID(rec.OrderIndex)
	sess.OrderIndex = rec.OrderIndex
	return nil
}

// UpdateRoom moves the session to a room and records it on the player
func (s *Service) UpdateRoom(ctx context.Context, token string, roomID int16) error {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	if ok {
		sess.RoomID = roomID
	}
	s.mu.Unlock()
	if !ok {
		return model.ErrSessionNotFound
	}

	rec, err := s.storage.GetPlayer(ctx, sess.PlayerID)
	if err != nil {
		return err
	}
	rec.RoomID = roomID
	return s.storage.SavePlayer(ctx, rec)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, sess := range s.sessions {
		if now.After(sess.LoggedInAt.Add(s.sessionDuration)) {
			s.dropLocked(token)
		}
	}
}

// dropLocked removes a session and its indexes. Caller holds mu.
func (s *Service) dropLocked(token string) {
	sess, ok := s.sessions[token]
	if !ok {
		return
	}
	delete(s.sessions, token)
	delete(s.byPlayer, sess.PlayerID)
	if sess.HandoffToken != "" {
		delete(s.handoffs, sess.HandoffToken)
	}
}

// setRosterPresence flips the player's online flag on their order
// roster. A dangling order index or missing roster entry is stale
// state, not a failure.
func (s *Service) setRosterPresence(ctx context.Context, rec *model.PlayerRecord, online bool) error {
	order, err := s.storage.GetOrder(ctx, model.OrderID(rec.OrderIndex))
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil
		}
		return err
	}
	if !order.Members.Contains(rec.ID) {
		return nil
	}
	// Insert replaces in place for a listed player, so this cannot
	// overflow.
	if err := order.Members.Insert(model.OrderMember{PlayerID: rec.ID, Online: online}, model.RejectWhenFull); err != nil {
		return err
	}
	return s.storage.SaveOrder(ctx, order)
}

// packedView builds the wire-visible subset for the packed cache. The
// caste index shown to legacy clients is the ranked rank tier.
func packedView(rec *model.PlayerRecord, version int32) codec.PackedPlayerData {
	return codec.PackedFromRecord(rec, model.StatusActive, rec.RankedScore.Rank, int16(version))
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}

// sortSessions orders sessions by their login sequence
func sortSessions(sessions []*model.OnlineSession) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].DataIndex < sessions[j].DataIndex
	})
}
