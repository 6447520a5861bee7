package model

import (
	"net/netip"
	"time"
)

// PlayerID uniquely identifies a player account. Zero is never assigned.
type PlayerID uint32

// OrderID uniquely identifies an order (clan). Zero means no order.
type OrderID uint32

// truncate clamps s to at most max bytes, keeping the prefix. The
// legacy format stores C char arrays, so the bound is bytes, not runes.
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// PlayerRecord is the durable account record. Bounded text fields are
// unexported and reached through accessors so that every mutation path
// applies the same silent tail-truncation; over-long input is a policy
// matter, never an error. Records are never deleted: bans and
// deactivation are expressed through Flags and the ban fields.
//
// The struct holds no mutable reference types (arrays, values, and
// immutable stdlib types only), so a plain assignment is a deep copy
// and doubles as the snapshot operation for concurrent readers.
type PlayerRecord struct {
	ID    PlayerID
	Flags PlayerFlags

	login    string
	password string

	LastLoginIP        netip.Addr
	LastLoginTime      time.Time
	LastGameTime       time.Time
	LastRankedGameTime time.Time

	RoomID     int16
	OrderIndex int16

	IconIndex          int16
	iconCollectionName string
	PrimaryColor       RGBColor
	SecondaryColor     RGBColor

	name        string
	teamName    string
	description string

	// BanDuration is in seconds; zero with the banned flag set means
	// indefinite.
	BanDuration int32
	BannedTime  time.Time
	TimesBanned int32

	CountryCode int16

	Buddies BuddyList

	UnrankedScore          ScoreDatum
	RankedScore            ScoreDatum
	RankedScoresByGameType [MaxGameTypes]ScoreDatum

	// LastOpponents is a ring; LastOpponentIndex is the next slot to
	// overwrite.
	LastOpponentIndex int
	LastOpponents     [TrackedOpponents]PlayerID

	Aux AdditionalPlayerData
}

// NewPlayerRecord returns a record with the legacy defaults applied.
func NewPlayerRecord(id PlayerID) *PlayerRecord {
	return &PlayerRecord{
		ID:          id,
		LastLoginIP: netip.IPv4Unspecified(),
	}
}

func (r *PlayerRecord) Login() string     { return r.login }
func (r *PlayerRecord) SetLogin(s string) { r.login = truncate(s, MaxLoginLength) }

// PasswordSecret is the legacy challenge secret, not the credential the
// services authenticate against; see the account service's bcrypt
// credentials for that.
func (r *PlayerRecord) PasswordSecret() string { return r.password }
func (r *PlayerRecord) SetPasswordSecret(s string) {
	r.password = truncate(s, MaxPlayerPasswordLength)
}

func (r *PlayerRecord) Name() string     { return r.name }
func (r *PlayerRecord) SetName(s string) { r.name = truncate(s, MaxPlayerNameLength) }

func (r *PlayerRecord) TeamName() string     { return r.teamName }
func (r *PlayerRecord) SetTeamName(s string) { r.teamName = truncate(s, MaxPlayerNameLength) }

func (r *PlayerRecord) Description() string { return r.description }
func (r *PlayerRecord) SetDescription(s string) {
	r.description = truncate(s, MaxDescriptionLength)
}

func (r *PlayerRecord) IconCollectionName() string { return r.iconCollectionName }
func (r *PlayerRecord) SetIconCollectionName(s string) {
	r.iconCollectionName = truncate(s, TagFileNameLength)
}

// Clone returns an independent snapshot of the record.
func (r *PlayerRecord) Clone() PlayerRecord { return *r }

// ApplyBan marks the record banned. A zero duration bans indefinitely.
func (r *PlayerRecord) ApplyBan(now time.Time, duration time.Duration) {
	r.Flags = r.Flags.With(PlayerFlagBanned)
	r.BannedTime = now
	r.BanDuration = int32(duration / time.Second)
	r.TimesBanned++
}

// LiftBan clears the banned flag. TimesBanned is history and stays.
func (r *PlayerRecord) LiftBan() {
	r.Flags = r.Flags.Without(PlayerFlagBanned)
	r.BanDuration = 0
}

// BanExpired reports whether a timed ban has run out. Indefinite bans
// never expire on their own.
func (r *PlayerRecord) BanExpired(now time.Time) bool {
	if !r.Flags.IsBanned() {
		return true
	}
	if r.BanDuration == 0 {
		return false
	}
	return now.After(r.BannedTime.Add(time.Duration(r.BanDuration) * time.Second))
}

// AddOpponent records an opponent in the ring, overwriting the oldest
// entry once the ring is full.
func (r *PlayerRecord) AddOpponent(id PlayerID) {
	if id == 0 {
		return
	}
	r.LastOpponents[r.LastOpponentIndex] = id
	r.LastOpponentIndex = (r.LastOpponentIndex + 1) % TrackedOpponents
}

// Credentials is the authentication record, stored separately from the
// player record so the hash never travels with gameplay data. The
// legacy challenge secret on the record is untouched by this.
type Credentials struct {
	PlayerID     PlayerID
	Login        string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
