package model

// PlayerStatus is the presence bitmask carried in the packed player
// buffer. Values combine with OR; zero means inactive.
type PlayerStatus uint16

const (
	StatusInactive       PlayerStatus = 0
	StatusUnacknowledged PlayerStatus = 1 << 0
	StatusActive         PlayerStatus = 1 << 1
	StatusOffline        PlayerStatus = 1 << 2

	// statusDomain is every bit a conforming peer may set.
	statusDomain = StatusUnacknowledged | StatusActive | StatusOffline
)

// Valid reports whether the status uses only defined bits. The packed
// codec rejects out-of-domain values rather than guessing.
func (s PlayerStatus) Valid() bool {
	return s&^statusDomain == 0
}

func (s PlayerStatus) IsActive() bool  { return s&StatusActive != 0 }
func (s PlayerStatus) IsOffline() bool { return s&StatusOffline != 0 }

// GameTypeFlags records which client products an account has logged in
// with. Unknown bits are preserved so newer clients round-trip cleanly.
type GameTypeFlags uint32

const (
	GameTypeMyth1    GameTypeFlags = 1 << 0
	GameTypeMyth2    GameTypeFlags = 1 << 1
	GameTypeMyth3    GameTypeFlags = 1 << 2
	GameTypeMarathon GameTypeFlags = 1 << 3
	GameTypeJchat    GameTypeFlags = 1 << 4
)

func (f GameTypeFlags) Has(bit GameTypeFlags) bool { return f&bit != 0 }

// With returns the flags with bit set.
func (f GameTypeFlags) With(bit GameTypeFlags) GameTypeFlags { return f | bit }

// Without returns the flags with bit cleared.
func (f GameTypeFlags) Without(bit GameTypeFlags) GameTypeFlags { return f &^ bit }

// PlayerFlags carries account standing and privilege bits. Unknown bits
// are preserved opaquely.
type PlayerFlags uint32

const (
	PlayerFlagBungieEmployee PlayerFlags = 1 << 0
	PlayerFlagKioskAccount   PlayerFlags = 1 << 1
	PlayerFlagAdmin          PlayerFlags = 1 << 2
	PlayerFlagBanned         PlayerFlags = 1 << 3
)

func (f PlayerFlags) Has(bit PlayerFlags) bool { return f&bit != 0 }

func (f PlayerFlags) IsAdmin() bool  { return f.Has(PlayerFlagAdmin) }
func (f PlayerFlags) IsBanned() bool { return f.Has(PlayerFlagBanned) }

// With returns the flags with bit set.
func (f PlayerFlags) With(bit PlayerFlags) PlayerFlags { return f | bit }

// Without returns the flags with bit cleared.
func (f PlayerFlags) Without(bit PlayerFlags) PlayerFlags { return f &^ bit }
