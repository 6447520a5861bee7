package response

import (
	"time"

	"github.com/bagrada/mythmeta/internal/model"
)

// Color is an RGB color in API responses
type Color struct {
	Red   uint8  `json:"red"`
	Green uint8  `json:"green"`
	Blue  uint8  `json:"blue"`
	Flags uint16 `json:"flags,omitempty"`
}

// ColorFromModel converts a model.RGBColor
func ColorFromModel(c model.RGBColor) Color {
	return Color{
		Red:   c.Red,
		Green: c.Green,
		Blue:  c.Blue,
		Flags: c.Flags,
	}
}

// ScoreDatum represents one scoring bucket in API responses
type ScoreDatum struct {
	GamesPlayed     uint32 `json:"games_played"`
	Wins            uint32 `json:"wins"`
	Losses          uint32 `json:"losses"`
	Ties            uint32 `json:"ties"`
	DamageInflicted uint32 `json:"damage_inflicted"`
	DamageReceived  uint32 `json:"damage_received"`
	Disconnects     uint32 `json:"disconnects"`
	Points          int32  `json:"points"`
	Rank            int16  `json:"rank"`
	HighestPoints   int32  `json:"highest_points"`
	HighestRank     int16  `json:"highest_rank"`
	NumericalRank   int16  `json:"numerical_rank"`
}

// ScoreDatumFromModel converts model.ScoreDatum
func ScoreDatumFromModel(d model.ScoreDatum) ScoreDatum {
	return ScoreDatum{
		GamesPlayed:     d.GamesPlayed,
		Wins:            d.Wins,
		Losses:          d.Losses,
		Ties:            d.Ties,
		DamageInflicted: d.DamageInflicted,
		DamageReceived:  d.DamageReceived,
		Disconnects:     d.Disconnects,
		Points:          d.Points,
		Rank:            d.Rank,
		HighestPoints:   d.HighestPoints,
		HighestRank:     d.HighestRank,
		NumericalRank:   d.NumericalRank,
	}
}

// GameTypeScore is a per-game-type scoring bucket. Only buckets with
// at least one game played appear in responses.
type GameTypeScore struct {
	GameType int16      `json:"game_type"`
	Name     string     `json:"name"`
	Score    ScoreDatum `json:"score"`
}

// gameTypeScores collects the played buckets from a score table
func gameTypeScores(table [model.MaxGameTypes]model.ScoreDatum) []GameTypeScore {
	var scores []GameTypeScore
	for i, d := range table {
		if d.GamesPlayed == 0 {
			continue
		}
		gt := model.GameType(i)
		scores = append(scores, GameTypeScore{
			GameType: int16(gt),
			Name:     gt.String(),
			Score:    ScoreDatumFromModel(d),
		})
	}
	return scores
}

// Buddy is one buddy list entry
type Buddy struct {
	PlayerID uint32 `json:"player_id"`
	Active   bool   `json:"active"`
}

// Player represents a player in API responses
type Player struct {
	ID                 uint32          `json:"id"`
	Login              string          `json:"login"`
	Name               string          `json:"name"`
	TeamName           string          `json:"team_name,omitempty"`
	Description        string          `json:"description,omitempty"`
	IconIndex          int16           `json:"icon_index"`
	IconCollectionName string          `json:"icon_collection_name,omitempty"`
	PrimaryColor       Color           `json:"primary_color"`
	SecondaryColor     Color           `json:"secondary_color"`
	CountryCode        int16           `json:"country_code,omitempty"`
	OrderIndex         int16           `json:"order_index,omitempty"`
	RoomID             int16           `json:"room_id,omitempty"`
	Admin              bool            `json:"admin,omitempty"`
	Banned             bool            `json:"banned,omitempty"`
	TimesBanned        int32           `json:"times_banned,omitempty"`
	LastLoginTime      *time.Time      `json:"last_login_time,omitempty"`
	LastGameTime       *time.Time      `json:"last_game_time,omitempty"`
	Buddies            []Buddy         `json:"buddies,omitempty"`
	UnrankedScore      ScoreDatum      `json:"unranked_score"`
	RankedScore        ScoreDatum      `json:"ranked_score"`
	RankedByGameType   []GameTypeScore `json:"ranked_by_game_type,omitempty"`
}

// PlayerFromModel converts a model.PlayerRecord to a response Player
func PlayerFromModel(rec *model.PlayerRecord) Player {
	var buddies []Buddy
	for _, b := range rec.Buddies {
		if b.PlayerID == 0 {
			continue
		}
		buddies = append(buddies, Buddy{PlayerID: uint32(b.PlayerID), Active: b.Active})
	}

	p := Player{
		ID:                 uint32(rec.ID),
		Login:              rec.Login(),
		Name:               rec.Name(),
		TeamName:           rec.TeamName(),
		Description:        rec.Description(),
		IconIndex:          rec.IconIndex,
		IconCollectionName: rec.IconCollectionName(),
		PrimaryColor:       ColorFromModel(rec.PrimaryColor),
		SecondaryColor:     ColorFromModel(rec.SecondaryColor),
		CountryCode:        rec.CountryCode,
		OrderIndex:         rec.OrderIndex,
		RoomID:             rec.RoomID,
		Admin:              rec.Flags.IsAdmin(),
		Banned:             rec.Flags.IsBanned(),
		TimesBanned:        rec.TimesBanned,
		Buddies:            buddies,
		UnrankedScore:      ScoreDatumFromModel(rec.UnrankedScore),
		RankedScore:        ScoreDatumFromModel(rec.RankedScore),
		RankedByGameType:   gameTypeScores(rec.RankedScoresByGameType),
	}
	if !rec.LastLoginTime.IsZero() {
		t := rec.LastLoginTime
		p.LastLoginTime = &t
	}
	if !rec.LastGameTime.IsZero() {
		t := rec.LastGameTime
		p.LastGameTime = &t
	}
	return p
}

// Session represents an online session in API responses
type Session struct {
	DataIndex  int32     `json:"data_index"`
	PlayerID   uint32    `json:"player_id"`
	Login      string    `json:"login"`
	Name       string    `json:"name"`
	RoomID     int16     `json:"room_id"`
	OrderID    uint32    `json:"order_id,omitempty"`
	OrderIndex int16     `json:"order_index,omitempty"`
	Version    int32     `json:"version"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// SessionFromModel converts a model.OnlineSession
func SessionFromModel(s *model.OnlineSession) Session {
	return Session{
		DataIndex:  s.DataIndex,
		PlayerID:   uint32(s.PlayerID),
		Login:      s.Login,
		Name:       s.Name,
		RoomID:     s.RoomID,
		OrderID:    uint32(s.OrderID),
		OrderIndex: s.OrderIndex,
		Version:    s.Version,
		LoggedInAt: s.LoggedInAt,
	}
}

// LoginResponse is the response for the login endpoint
type LoginResponse struct {
	SessionToken string  `json:"session_token"`
	Session      Session `json:"session"`
	Player       Player  `json:"player"`
}

// HandoffResponse carries a minted room handoff token
type HandoffResponse struct {
	Token string `json:"token"`
}

// OrderMember is one roster slot in API responses
type OrderMember struct {
	PlayerID uint32 `json:"player_id"`
	Online   bool   `json:"online"`
}

// Order represents an order in API responses
type Order struct {
	ID               uint32          `json:"id"`
	Name             string          `json:"name"`
	URL              string          `json:"url,omitempty"`
	ContactEmail     string          `json:"contact_email,omitempty"`
	Motto            string          `json:"motto,omitempty"`
	FoundingDate     time.Time       `json:"founding_date"`
	Members          []OrderMember   `json:"members,omitempty"`
	MemberCount      int             `json:"member_count"`
	UnrankedScore    ScoreDatum      `json:"unranked_score"`
	RankedScore      ScoreDatum      `json:"ranked_score"`
	RankedByGameType []GameTypeScore `json:"ranked_by_game_type,omitempty"`
}

// OrderFromModel converts a model.OrderRecord
func OrderFromModel(o *model.OrderRecord) Order {
	var members []OrderMember
	for _, m := range o.Members {
		if m.PlayerID == 0 {
			continue
		}
		members = append(members, OrderMember{PlayerID: uint32(m.PlayerID), Online: m.Online})
	}

	return Order{
		ID:               uint32(o.ID),
		Name:             o.Name(),
		URL:              o.URL(),
		ContactEmail:     o.ContactEmail(),
		Motto:            o.Motto(),
		FoundingDate:     o.FoundingDate,
		Members:          members,
		MemberCount:      o.Members.Count(),
		UnrankedScore:    ScoreDatumFromModel(o.UnrankedScore),
		RankedScore:      ScoreDatumFromModel(o.RankedScore),
		RankedByGameType: gameTypeScores(o.RankedScoresByGameType),
	}
}
