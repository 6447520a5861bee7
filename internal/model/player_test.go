package model

import (
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerRecordDefaults(t *testing.T) {
	r := NewPlayerRecord(42)

	assert.Equal(t, PlayerID(42), r.ID)
	assert.Equal(t, netip.IPv4Unspecified(), r.LastLoginIP)
	assert.Equal(t, "0.0.0.0", r.LastLoginIP.String())
	assert.Zero(t, r.Flags)
	assert.Equal(t, MaxBuddies, len(r.Buddies))
	assert.Equal(t, MaxGameTypes, len(r.RankedScoresByGameType))
	assert.Equal(t, TrackedOpponents, len(r.LastOpponents))
}

func TestBoundedFieldsTruncateOnSet(t *testing.T) {
	tests := []struct {
		name string
		set  func(*PlayerRecord, string)
		get  func(*PlayerRecord) string
		max  int
	}{
		{"login", (*PlayerRecord).SetLogin, (*PlayerRecord).Login, MaxLoginLength},
		{"password", (*PlayerRecord).SetPasswordSecret, (*PlayerRecord).PasswordSecret, MaxPlayerPasswordLength},
		{"name", (*PlayerRecord).SetName, (*PlayerRecord).Name, MaxPlayerNameLength},
		{"team name", (*PlayerRecord).SetTeamName, (*PlayerRecord).TeamName, MaxPlayerNameLength},
		{"description", (*PlayerRecord).SetDescription, (*PlayerRecord).Description, MaxDescriptionLength},
		{"icon collection", (*PlayerRecord).SetIconCollectionName, (*PlayerRecord).IconCollectionName, TagFileNameLength},
	}

	long := strings.Repeat("x", MaxDescriptionLength+100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPlayerRecord(1)

			tt.set(r, long)
			assert.Len(t, tt.get(r), tt.max, "over-long input clamps to the max")
			assert.Equal(t, long[:tt.max], tt.get(r), "prefix is kept")

			tt.set(r, "ok")
			assert.Equal(t, "ok", tt.get(r), "short input passes through")

			tt.set(r, long[:tt.max])
			assert.Equal(t, long[:tt.max], tt.get(r), "input at the bound is untouched")
		})
	}
}

func TestTruncationKeepsPrefix(t *testing.T) {
	r := NewPlayerRecord(1)

	// The classic case: an 8-byte tag field swallows a long name.
	r.SetIconCollectionName("averylongusernamethatmustbecutoff")
	assert.Equal(t, "averylon", r.IconCollectionName())

	r.SetLogin("averylongusernamethatmustbecutoff")
	assert.Equal(t, "averylonguserna", r.Login())
}

func TestTruncationAppliesOnEveryMutation(t *testing.T) {
	r := NewPlayerRecord(1)
	r.SetName("short")
	require.Equal(t, "short", r.Name())

	// A later assignment must clamp just like the first one did.
	r.SetName(strings.Repeat("n", MaxPlayerNameLength*2))
	assert.Len(t, r.Name(), MaxPlayerNameLength)
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewPlayerRecord(7)
	r.SetName("original")
	_ = r.Buddies.Insert(BuddyEntry{PlayerID: 9, Active: true}, RejectWhenFull)
	r.RankedScore.Points = 12

	snap := r.Clone()
	r.SetName("changed")
	r.Buddies.Remove(9)
	r.RankedScore.Points = 99

	assert.Equal(t, "original", snap.Name())
	assert.True(t, snap.Buddies.Contains(9))
	assert.Equal(t, int32(12), snap.RankedScore.Points)
}

func TestBanLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewPlayerRecord(1)

	r.ApplyBan(now, time.Hour)
	assert.True(t, r.Flags.IsBanned())
	assert.Equal(t, int32(3600), r.BanDuration)
	assert.Equal(t, int32(1), r.TimesBanned)
	assert.False(t, r.BanExpired(now.Add(30*time.Minute)))
	assert.True(t, r.BanExpired(now.Add(2*time.Hour)))

	r.LiftBan()
	assert.False(t, r.Flags.IsBanned())
	assert.Equal(t, int32(1), r.TimesBanned, "ban count is history")

	// An indefinite ban never times out.
	r.ApplyBan(now, 0)
	assert.Equal(t, int32(2), r.TimesBanned)
	assert.False(t, r.BanExpired(now.AddDate(10, 0, 0)))
}

func TestOpponentRingWraps(t *testing.T) {
	r := NewPlayerRecord(1)

	for id := PlayerID(1); id <= TrackedOpponents; id++ {
		r.AddOpponent(id)
	}
	assert.Equal(t, 0, r.LastOpponentIndex, "cursor wraps after a full lap")
	assert.Equal(t, PlayerID(1), r.LastOpponents[0])
	assert.Equal(t, PlayerID(TrackedOpponents), r.LastOpponents[TrackedOpponents-1])

	r.AddOpponent(11)
	assert.Equal(t, PlayerID(11), r.LastOpponents[0], "oldest entry is overwritten")
	assert.Equal(t, 1, r.LastOpponentIndex)

	r.AddOpponent(0)
	assert.Equal(t, 1, r.LastOpponentIndex, "zero ids are ignored")
}
