package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayerList(v)
	case LoginResult:
		o.printLoginResult(v)
	case Session:
		o.printSession(v)
	case []Session:
		o.printSessionList(v)
	case Order:
		o.printOrder(v)
	case []Order:
		o.printOrderList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// ScoreDatum response type (matches API)
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

// GameTypeScore response type
type GameTypeScore struct {
	GameType int16      `json:"game_type"`
	Name     string     `json:"name"`
	Score    ScoreDatum `json:"score"`
}

// Buddy response type
type Buddy struct {
	PlayerID uint32 `json:"player_id"`
	Active   bool   `json:"active"`
}

// Player response type
type Player struct {
	ID               uint32          `json:"id"`
	Login            string          `json:"login"`
	Name             string          `json:"name"`
	TeamName         string          `json:"team_name"`
	Description      string          `json:"description"`
	Admin            bool            `json:"admin"`
	Banned           bool            `json:"banned"`
	TimesBanned      int32           `json:"times_banned"`
	OrderIndex       int16           `json:"order_index"`
	RoomID           int16           `json:"room_id"`
	LastLoginTime    *time.Time      `json:"last_login_time"`
	LastGameTime     *time.Time      `json:"last_game_time"`
	Buddies          []Buddy         `json:"buddies"`
	UnrankedScore    ScoreDatum      `json:"unranked_score"`
	RankedScore      ScoreDatum      `json:"ranked_score"`
	RankedByGameType []GameTypeScore `json:"ranked_by_game_type"`
}

// Session response type
type Session struct {
	DataIndex  int32     `json:"data_index"`
	PlayerID   uint32    `json:"player_id"`
	Login      string    `json:"login"`
	Name       string    `json:"name"`
	RoomID     int16     `json:"room_id"`
	OrderID    uint32    `json:"order_id,omitempty"`
	OrderIndex int16     `json:"order_index"`
	Version    int32     `json:"version"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// LoginResult combines session, player and token
type LoginResult struct {
	SessionToken string  `json:"session_token"`
	Session      Session `json:"session"`
	Player       Player  `json:"player"`
}

// OrderMember response type
type OrderMember struct {
	PlayerID uint32 `json:"player_id"`
	Online   bool   `json:"online"`
}

// Order response type
type Order struct {
	ID            uint32        `json:"id"`
	Name          string        `json:"name"`
	URL           string        `json:"url"`
	ContactEmail  string        `json:"contact_email"`
	Motto         string        `json:"motto"`
	FoundingDate  time.Time     `json:"founding_date"`
	Members       []OrderMember `json:"members"`
	MemberCount   int           `json:"member_count"`
	UnrankedScore ScoreDatum    `json:"unranked_score"`
	RankedScore   ScoreDatum    `json:"ranked_score"`
}

// HealthResult response type
type HealthResult struct {
	Status        string `json:"status"`
	PlayersOnline int    `json:"players_online"`
}

func (o *Output) printPlayer(p Player) {
	badges := []string{}
	if p.Admin {
		badges = append(badges, "admin")
	}
	if p.Banned {
		badges = append(badges, "banned")
	}
	badgeStr := ""
	if len(badges) > 0 {
		badgeStr = " [" + strings.Join(badges, ", ") + "]"
	}

	fmt.Printf("Player: %s (%s, #%d)%s\n", p.Name, p.Login, p.ID, badgeStr)
	if p.TeamName != "" {
		fmt.Printf("Team: %s\n", p.TeamName)
	}
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	if p.OrderIndex != 0 {
		fmt.Printf("Order: #%d\n", p.OrderIndex)
	}
	if p.TimesBanned > 0 {
		fmt.Printf("Times Banned: %d\n", p.TimesBanned)
	}
	if p.LastLoginTime != nil {
		fmt.Printf("Last Login: %s\n", p.LastLoginTime.Format("2006-01-02 15:04:05"))
	}

	fmt.Printf("Unranked: %s\n", formatScore(p.UnrankedScore))
	fmt.Printf("Ranked: %s\n", formatScore(p.RankedScore))
	for _, gts := range p.RankedByGameType {
		fmt.Printf("  %s: %s\n", gts.Name, formatScore(gts.Score))
	}

	if len(p.Buddies) > 0 {
		ids := make([]string, len(p.Buddies))
		for i, b := range p.Buddies {
			ids[i] = fmt.Sprintf("#%d", b.PlayerID)
		}
		fmt.Printf("Buddies: %s\n", strings.Join(ids, ", "))
	}
}

func (o *Output) printPlayerList(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		marker := ""
		if p.Banned {
			marker = " [banned]"
		}
		fmt.Printf("  #%d %s (%s)%s\n", p.ID, p.Name, p.Login, marker)
	}
}

func (o *Output) printLoginResult(l LoginResult) {
	o.printSession(l.Session)
	fmt.Printf("Token: %s\n", l.SessionToken)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s (%s, #%d)\n", s.Name, s.Login, s.PlayerID)
	fmt.Printf("Slot: %d\n", s.DataIndex)
	fmt.Printf("Room: %d\n", s.RoomID)
	fmt.Printf("Build: %d\n", s.Version)
	fmt.Printf("Since: %s\n", s.LoggedInAt.Format("2006-01-02 15:04:05"))
}

func (o *Output) printSessionList(sessions []Session) {
	fmt.Printf("Online (%d):\n", len(sessions))
	for _, s := range sessions {
		fmt.Printf("  [%d] %s (%s) room %d build %d\n",
			s.DataIndex, s.Name, s.Login, s.RoomID, s.Version)
	}
}

func (o *Output) printOrder(ord Order) {
	fmt.Printf("Order: %s (#%d)\n", ord.Name, ord.ID)
	if ord.Motto != "" {
		fmt.Printf("Motto: %s\n", ord.Motto)
	}
	if ord.URL != "" {
		fmt.Printf("URL: %s\n", ord.URL)
	}
	if ord.ContactEmail != "" {
		fmt.Printf("Contact: %s\n", ord.ContactEmail)
	}
	fmt.Printf("Founded: %s\n", ord.FoundingDate.Format("2006-01-02"))
	fmt.Printf("Ranked: %s\n", formatScore(ord.RankedScore))
	fmt.Printf("Members (%d):\n", ord.MemberCount)
	for _, m := range ord.Members {
		onlineStr := ""
		if m.Online {
			onlineStr = " [online]"
		}
		fmt.Printf("  - #%d%s\n", m.PlayerID, onlineStr)
	}
}

func (o *Output) printOrderList(orders []Order) {
	fmt.Printf("Orders (%d):\n", len(orders))
	for _, ord := range orders {
		fmt.Printf("  #%d %s (%d members)\n", ord.ID, ord.Name, ord.MemberCount)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Players online: %d\n", h.PlayersOnline)
}

// formatScore renders one scoring bucket as a single line
func formatScore(s ScoreDatum) string {
	line := fmt.Sprintf("%dW-%dL-%dT (%d games, %d pts)",
		s.Wins, s.Losses, s.Ties, s.GamesPlayed, s.Points)
	if s.NumericalRank > 0 {
		line += fmt.Sprintf(", rank %d", s.NumericalRank)
	}
	return line
}
