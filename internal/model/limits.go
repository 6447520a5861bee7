package model

// Capacity and length limits inherited from the bungie.net player file
// format. These are wire-visible: changing any of them breaks packed
// buffers and stored documents, so they are pinned here and nowhere else.
const (
	// TagFileNameLength bounds icon collection tags (Myth tag file names).
	TagFileNameLength = 8

	MaxLoginLength          = 15
	MaxPlayerPasswordLength = 15
	MaxPlayerNameLength     = 31
	MaxDescriptionLength    = 431

	// MaxGameTypes is the width of the per-game-type score table. Only
	// the first NumGameTypes slots are assigned; the rest are reserved.
	MaxGameTypes = 16

	MaxBuddies = 16

	// MaxOrderMembers is the order roster size in the player-facing
	// protocol; the room server exchanges the extended table.
	MaxOrderMembers    = 16
	MaxOrderMembersExt = 32

	// PackedPlayerDataSize is the exact length of the packed player
	// buffer carried by the legacy client protocol.
	PackedPlayerDataSize = 128

	// TrackedOpponents is the size of the recent-opponent ring.
	TrackedOpponents = 10
)

// Order (clan) record limits.
const (
	MaxOrderNameLength     = 31
	MaxOrderPasswordLength = 31
	MaxOrderMottoLength    = 511
	MaxOrderURLLength      = 127
	MaxOrderEmailLength    = 127
)
