package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bagrada/mythmeta/internal/dependencies/clock"
	"github.com/bagrada/mythmeta/internal/dependencies/random"
	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/storage"
)

// Errors
var (
	ErrEmptyLogin     = errors.New("login must not be empty")
	ErrEmptyOrderName = errors.New("order name must not be empty")
	ErrOrderNameTaken = errors.New("order name is already taken")
)

// minSustainingMembers is the roster size below which an order's grace
// clock starts running.
const minSustainingMembers = 3

// Service manages durable player and order records: account creation,
// profile updates, buddy lists, bans, and order membership. Records are
// never deleted; standing is expressed through flags and ban metadata.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	buddyPolicy  model.OverflowPolicy
	rosterPolicy model.OverflowPolicy
}

// Config holds configuration for the account service
type Config struct {
	// BuddyOverflowPolicy decides what AddBuddy does when the list is
	// already full.
	BuddyOverflowPolicy model.OverflowPolicy
	// RosterOverflowPolicy decides what JoinOrder does when the roster
	// is already full.
	RosterOverflowPolicy model.OverflowPolicy
}

// DefaultConfig returns default account configuration. Full lists
// reject new entries; callers that want eviction opt in.
func DefaultConfig() Config {
	return Config{
		BuddyOverflowPolicy:  model.RejectWhenFull,
		RosterOverflowPolicy: model.RejectWhenFull,
	}
}

// New creates a new account Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage:      storage,
		clock:        clock,
		random:       random,
		logger:       logger,
		buddyPolicy:  cfg.BuddyOverflowPolicy,
		rosterPolicy: cfg.RosterOverflowPolicy,
	}
}

// CreateAccount registers a new player. The bcrypt hash of the password
// is stored as the account credential; the truncated plaintext also
// lands on the record as the legacy challenge secret, which the old
// client protocol needs verbatim. The first account ever created is
// granted the admin flag.
func (s *Service) CreateAccount(ctx context.Context, login, password, name string) (*model.PlayerRecord, error) {
	rec := model.NewPlayerRecord(0)
	rec.SetLogin(login)
	rec.SetName(name)
	if rec.Login() == "" {
		return nil, ErrEmptyLogin
	}

	// Uniqueness is checked against the stored (truncated) form.
	_, err := s.storage.GetPlayerByLogin(ctx, rec.Login())
	if err == nil {
		return nil, model.ErrLoginTaken
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.storage.AllocatePlayerID(ctx)
	if err != nil {
		return nil, err
	}

	rec.ID = id
	rec.SetPasswordSecret(password)
	rec.PrimaryColor = s.randomColor()
	rec.SecondaryColor = s.randomColor()
	if id == 1 {
		rec.Flags = rec.Flags.With(model.PlayerFlagAdmin)
	}

	now := s.clock.Now()
	creds := &model.Credentials{
		PlayerID:     id,
		Login:        rec.Login(),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.storage.SaveCredentials(ctx, creds); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		slog.Int("player_id", int(rec.ID)),
		slog.String("login", rec.Login()),
	)

	return rec, nil
}

// Authenticate verifies a login/password pair against the stored bcrypt
// credential and returns the player record. Expired timed bans are
// lifted on the way through; unexpired bans fail with ErrPlayerBanned.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*model.PlayerRecord, error) {
	creds, err := s.storage.GetCredentialsByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrCredentialsNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	rec, err := s.storage.GetPlayer(ctx, creds.PlayerID)
	if err != nil {
		return nil, err
	}

	if rec.Flags.IsBanned() {
		if !rec.BanExpired(s.clock.Now()) {
			return nil, model.ErrPlayerBanned
		}
		rec.LiftBan()
		if err := s.storage.SavePlayer(ctx, rec); err != nil {
			return nil, err
		}
		s.logger.Info("timed ban expired",
			slog.Int("player_id", int(rec.ID)),
		)
	}

	return rec, nil
}

// GetPlayer returns the record for a player ID
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error) {
	return s.storage.GetPlayer(ctx, id)
}

// GetPlayerByLogin returns the record for a login
func (s *Service) GetPlayerByLogin(ctx context.Context, login string) (*model.PlayerRecord, error) {
	return s.storage.GetPlayerByLogin(ctx, login)
}

// ListPlayers returns every player record ordered by ID
func (s *Service) ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error) {
	return s.storage.ListPlayers(ctx)
}

// ProfileUpdate carries optional profile changes. Nil fields are left
// untouched; set fields pass through the record's truncating setters.
type ProfileUpdate struct {
	Name               *string
	TeamName           *string
	Description        *string
	IconIndex          *int16
	IconCollectionName *string
	PrimaryColor       *model.RGBColor
	SecondaryColor     *model.RGBColor
	CountryCode        *int16
}

// UpdateProfile applies a profile update and returns the saved record
func (s *Service) UpdateProfile(ctx context.Context, id model.PlayerID, update ProfileUpdate) (*model.PlayerRecord, error) {
	rec, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		rec.SetName(*update.Name)
	}
	if update.TeamName != nil {
		rec.SetTeamName(*update.TeamName)
	}
	if update.Description != nil {
		rec.SetDescription(*update.Description)
	}
	if update.IconIndex != nil {
		rec.IconIndex = *update.IconIndex
	}
	if update.IconCollectionName != nil {
		rec.SetIconCollectionName(*update.IconCollectionName)
	}
	if update.PrimaryColor != nil {
		rec.PrimaryColor = *update.PrimaryColor
	}
	if update.SecondaryColor != nil {
		rec.SecondaryColor = *update.SecondaryColor
	}
	if update.CountryCode != nil {
		rec.CountryCode = *update.CountryCode
	}

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ChangePassword rehashes the credential and refreshes the legacy
// challenge secret on the record
func (s *Service) ChangePassword(ctx context.Context, id model.PlayerID, newPassword string) error {
	creds, err := s.storage.GetCredentials(ctx, id)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	creds.PasswordHash = string(hash)
	creds.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveCredentials(ctx, creds); err != nil {
		return err
	}

	rec, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return err
	}
	rec.SetPasswordSecret(newPassword)
	return s.storage.SavePlayer(ctx, rec)
}

// SetAdmin grants or revokes the admin flag
func (s *Service) SetAdmin(ctx context.Context, id model.PlayerID, admin bool) (*model.PlayerRecord, error) {
	rec, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if admin {
		rec.Flags = rec.Flags.With(model.PlayerFlagAdmin)
	} else {
		rec.Flags = rec.Flags.Without(model.PlayerFlagAdmin)
	}

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AddBuddy inserts buddyID into the player's buddy list. The buddy must
// exist; a full list defers to the configured overflow policy.
func (s *Service) AddBuddy(ctx context.Context, id, buddyID model.PlayerID) (*model.PlayerRecord, error) {
	rec, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.storage.GetPlayer(ctx, buddyID); err != nil {
		return nil, err
	}

	entry := model.BuddyEntry{PlayerID: buddyID, Active: true}
	if err := rec.Buddies.Insert(entry, s.buddyPolicy); err != nil {
		return nil, err
	}

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RemoveBuddy drops buddyID from the player's buddy list. Removing an
// absent buddy is a no-op, matching the legacy behavior.
func (s *Service) RemoveBuddy(ctx context.Context, id, buddyID model.PlayerID) (*model.PlayerRecord, error) {
	rec, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.Buddies.Remove(buddyID)

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Ban marks the player banned from now. A zero duration bans
// indefinitely; a timed ban lifts itself at the next authentication
// after it runs out.
func (s *Service) Ban(ctx context.Context, id model.PlayerID, duration time.Duration) (*model.PlayerRecord, error) {
	rec, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.ApplyBan(s.clock.Now(), duration)

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("player banned",
		slog.Int("player_id", int(rec.ID)),
		slog.Duration("duration", duration),
		slog.Int("times_banned", int(rec.TimesBanned)),
	)

	return rec, nil
}

// Unban lifts a ban immediately
func (s *Service) Unban(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error) {
	rec, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.LiftBan()

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("ban lifted",
		slog.Int("player_id", int(rec.ID)),
	)

	return rec, nil
}

// CreateOrder founds a new order with the founder as its first member
func (s *Service) CreateOrder(ctx context.Context, name, memberPassword, maintenancePassword string, founderID model.PlayerID) (*model.OrderRecord, error) {
	founder, err := s.storage.GetPlayer(ctx, founderID)
	if err != nil {
		return nil, err
	}

	order := model.NewOrderRecord(0, s.clock.Now())
	order.SetName(name)
	if order.Name() == "" {
		return nil, ErrEmptyOrderName
	}

	_, err = s.storage.GetOrderByName(ctx, order.Name())
	if err == nil {
		return nil, ErrOrderNameTaken
	}
	if !errors.Is(err, model.ErrOrderNotFound) {
		return nil, err
	}

	id, err := s.storage.AllocateOrderID(ctx)
	if err != nil {
		return nil, err
	}

	order.ID = id
	order.SetMemberPassword(memberPassword)
	order.SetMaintenancePassword(maintenancePassword)
	if err := order.Members.Insert(model.OrderMember{PlayerID: founderID}, s.rosterPolicy); err != nil {
		return nil, err
	}
	// A fresh order is below sustaining size until two more join.
	order.InitialDateBelowThreeMembers = s.clock.Now()

	founder.OrderIndex = int16(id)

	if err := s.storage.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	if err := s.storage.SavePlayer(ctx, founder); err != nil {
		return nil, err
	}

	s.logger.Info("order founded",
		slog.Int("order_id", int(order.ID)),
		slog.String("name", order.Name()),
		slog.Int("founder_id", int(founderID)),
	)

	return order, nil
}

// JoinOrder adds a player to an order's roster. The member password
// must match; a full roster defers to the configured overflow policy.
func (s *Service) JoinOrder(ctx context.Context, playerID model.PlayerID, orderID model.OrderID, memberPassword string) (*model.OrderRecord, error) {
	rec, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	order, err := s.storage.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.MemberPassword() != memberPassword {
		return nil, model.ErrInvalidCredentials
	}

	// Switching orders leaves the old roster first so no stale entry
	// survives. A dangling index on the player heals silently.
	if rec.OrderIndex != 0 && model.OrderID(rec.OrderIndex) != orderID {
		err := s.LeaveOrder(ctx, playerID)
		if err != nil && !errors.Is(err, model.ErrOrderNotFound) && !errors.Is(err, model.ErrNotOrderMember) {
			return nil, err
		}
	}

	if err := order.Members.Insert(model.OrderMember{PlayerID: playerID}, s.rosterPolicy); err != nil {
		return nil, err
	}
	if order.Members.Count() >= minSustainingMembers {
		order.InitialDateBelowThreeMembers = time.Time{}
	}

	rec.OrderIndex = int16(orderID)

	if err := s.storage.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}

	return order, nil
}

// LeaveOrder removes a player from their current order. Dropping below
// sustaining size starts the order's grace clock.
func (s *Service) LeaveOrder(ctx context.Context, playerID model.PlayerID) error {
	rec, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if rec.OrderIndex == 0 {
		return model.ErrNotOrderMember
	}

	order, err := s.storage.GetOrder(ctx, model.OrderID(rec.OrderIndex))
	if err != nil {
		return err
	}

	if !order.Members.Remove(playerID) {
		return model.ErrNotOrderMember
	}
	if order.Members.Count() < minSustainingMembers && order.InitialDateBelowThreeMembers.IsZero() {
		order.InitialDateBelowThreeMembers = s.clock.Now()
	}

	rec.OrderIndex = 0

	if err := s.storage.SaveOrder(ctx, order); err != nil {
		return err
	}
	return s.storage.SavePlayer(ctx, rec)
}

// GetOrder returns the record for an order ID
func (s *Service) GetOrder(ctx context.Context, id model.OrderID) (*model.OrderRecord, error) {
	return s.storage.GetOrder(ctx, id)
}

// GetOrderByName returns the record for an order name
func (s *Service) GetOrderByName(ctx context.Context, name string) (*model.OrderRecord, error) {
	return s.storage.GetOrderByName(ctx, name)
}

// ListOrders returns every order record ordered by ID
func (s *Service) ListOrders(ctx context.Context) ([]*model.OrderRecord, error) {
	return s.storage.ListOrders(ctx)
}

// randomColor draws a color with random channels
func (s *Service) randomColor() model.RGBColor {
	return model.RGBColor{
		Red:   uint8(s.random.Intn(256)),
		Green: uint8(s.random.Intn(256)),
		Blue:  uint8(s.random.Intn(256)),
	}
}
