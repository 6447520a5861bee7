package model

import "time"

// OnlineSession is the ephemeral view of a logged-in player. It is
// never persisted; everything durable lives on the PlayerRecord it
// references by ID. The packed buffer is a cache of the record's wire
// form so room handoffs don't re-encode per request.
type OnlineSession struct {
	// DataIndex is the sequential slot assigned at login; the legacy
	// protocol uses it to address online players.
	DataIndex int32

	PlayerID PlayerID
	Login    string
	Name     string

	RoomID int16

	// OrderID is the order the player belongs to, resolved at login
	// for room handoffs. OrderIndex mirrors the durable record's
	// legacy field; both are zero for unaffiliated players.
	OrderID    OrderID
	OrderIndex int16

	LoggedIn bool

	// PackedData caches the encoded player buffer; BufferPos is the
	// read cursor for clients that fetch it in chunks.
	PackedData [PackedPlayerDataSize]byte
	BufferPos  int

	// Version is the client build number (2150 for Myth II 1.5.0,
	// demo builds multiply by 10).
	Version int32

	// Token authenticates API calls for this session; HandoffToken is
	// minted for room-server handoffs and consumed on first use.
	Token        string
	HandoffToken string

	LoggedInAt time.Time
}
