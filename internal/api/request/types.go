package request

// CreateAccountRequest is the request body for creating an account
type CreateAccountRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	// Version is the client build number; Product is the game type bit
	// the client identifies as (e.g. 2 for Myth II).
	Version int32 `json:"version,omitempty"`
	Product int32 `json:"product,omitempty"`
}

// Color is an RGB color in request and response bodies
type Color struct {
	Red   uint8  `json:"red"`
	Green uint8  `json:"green"`
	Blue  uint8  `json:"blue"`
	Flags uint16 `json:"flags,omitempty"`
}

// UpdateProfileRequest is the request body for updating a profile.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	Name               *string `json:"name,omitempty"`
	TeamName           *string `json:"team_name,omitempty"`
	Description        *string `json:"description,omitempty"`
	IconIndex          *int16  `json:"icon_index,omitempty"`
	IconCollectionName *string `json:"icon_collection_name,omitempty"`
	PrimaryColor       *Color  `json:"primary_color,omitempty"`
	SecondaryColor     *Color  `json:"secondary_color,omitempty"`
	CountryCode        *int16  `json:"country_code,omitempty"`
}

// ChangePasswordRequest is the request body for changing a password
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// BanRequest is the request body for banning a player. A zero duration
// bans indefinitely.
type BanRequest struct {
	DurationSeconds int64 `json:"duration_seconds"`
}

// SetAdminRequest is the request body for granting or revoking admin
type SetAdminRequest struct {
	Admin bool `json:"admin"`
}

// CreateOrderRequest is the request body for founding an order
type CreateOrderRequest struct {
	Name                string `json:"name"`
	MemberPassword      string `json:"member_password,omitempty"`
	MaintenancePassword string `json:"maintenance_password,omitempty"`
}

// JoinOrderRequest is the request body for joining an order
type JoinOrderRequest struct {
	Password string `json:"password,omitempty"`
}

// UpdateRoomRequest is the request body for moving to a room
type UpdateRoomRequest struct {
	RoomID int16 `json:"room_id"`
}

// RedeemHandoffRequest is the request body for redeeming a room handoff
type RedeemHandoffRequest struct {
	Token string `json:"token"`
}

// RecordResultRequest is the request body for reporting a game result
type RecordResultRequest struct {
	GameType        int16    `json:"game_type"`
	Ranked          bool     `json:"ranked"`
	Standing        string   `json:"standing"`
	DamageInflicted uint32   `json:"damage_inflicted,omitempty"`
	DamageReceived  uint32   `json:"damage_received,omitempty"`
	Disconnected    bool     `json:"disconnected,omitempty"`
	PointsDelta     int32    `json:"points_delta,omitempty"`
	NewRank         int16    `json:"new_rank,omitempty"`
	Opponents       []uint32 `json:"opponents,omitempty"`
}
