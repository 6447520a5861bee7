package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerStatusDomain(t *testing.T) {
	tests := []struct {
		name   string
		status PlayerStatus
		valid  bool
	}{
		{"inactive", StatusInactive, true},
		{"unacknowledged", StatusUnacknowledged, true},
		{"active", StatusActive, true},
		{"offline", StatusOffline, true},
		{"active and offline combine", StatusActive | StatusOffline, true},
		{"all defined bits", StatusUnacknowledged | StatusActive | StatusOffline, true},
		{"undefined bit", PlayerStatus(1 << 3), false},
		{"defined plus undefined", StatusActive | PlayerStatus(1<<9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
		})
	}
}

func TestPlayerFlagsAccessors(t *testing.T) {
	var f PlayerFlags

	f = f.With(PlayerFlagAdmin)
	assert.True(t, f.IsAdmin())
	assert.False(t, f.IsBanned())

	f = f.With(PlayerFlagBanned)
	assert.True(t, f.IsBanned())

	f = f.Without(PlayerFlagAdmin)
	assert.False(t, f.IsAdmin())
	assert.True(t, f.IsBanned(), "clearing one bit leaves the others")
}

func TestUnknownFlagBitsSurvive(t *testing.T) {
	// Bits this build doesn't define must pass through untouched.
	f := PlayerFlags(1<<20) | PlayerFlagAdmin
	f = f.With(PlayerFlagBanned).Without(PlayerFlagAdmin)
	assert.True(t, f.Has(PlayerFlags(1<<20)))

	g := GameTypeFlags(1<<31) | GameTypeMyth2
	g = g.Without(GameTypeMyth2).With(GameTypeJchat)
	assert.True(t, g.Has(GameTypeFlags(1<<31)))
	assert.False(t, g.Has(GameTypeMyth2))
}

func TestGameTypeTable(t *testing.T) {
	assert.True(t, GameTypeBodyCount.Valid())
	assert.True(t, GameTypeKingOfTheHillTFL.Valid())
	assert.True(t, GameType(MaxGameTypes-1).Valid(), "reserved slots still index the table")
	assert.False(t, GameType(MaxGameTypes).Valid())
	assert.False(t, GameType(-1).Valid())

	assert.Equal(t, "Capture the Flag", GameTypeCaptureTheFlag.String())
	assert.Equal(t, "Unknown", GameType(15).String())
}
