package codec

import (
	"encoding/json"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagrada/mythmeta/internal/model"
)

// richPlayer builds a record with every field off its zero value so the
// round-trip tests cover the whole surface.
func richPlayer() *model.PlayerRecord {
	r := model.NewPlayerRecord(310)
	r.SetLogin("deceiver")
	r.SetPasswordSecret("watersofbalor")
	r.Flags = model.PlayerFlagAdmin | model.PlayerFlags(1<<17)
	r.LastLoginIP = netip.MustParseAddr("192.168.1.44")
	r.LastLoginTime = time.Date(2026, 2, 3, 18, 4, 5, 0, time.UTC)
	r.LastGameTime = time.Date(2026, 2, 3, 19, 30, 0, 0, time.UTC)
	r.LastRankedGameTime = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	r.RoomID = 6
	r.OrderIndex = 2
	r.IconIndex = 14
	r.SetIconCollectionName("internal")
	r.PrimaryColor = model.RGBColor{Red: 255, Green: 128, Blue: 0, Flags: 2}
	r.SecondaryColor = model.RGBColor{Red: 3, Green: 9, Blue: 27}
	r.SetName("The Deceiver")
	r.SetTeamName("Legion of the Dead")
	r.SetDescription("Returned from the Tain.")
	r.BanDuration = 600
	r.BannedTime = time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	r.TimesBanned = 2
	r.CountryCode = 61
	_ = r.Buddies.Insert(model.BuddyEntry{PlayerID: 11, Active: true}, model.RejectWhenFull)
	_ = r.Buddies.Insert(model.BuddyEntry{PlayerID: 45}, model.RejectWhenFull)
	r.UnrankedScore = model.ScoreDatum{GamesPlayed: 80, Wins: 31, Losses: 40, Ties: 9,
		DamageInflicted: 90210, DamageReceived: 71000, Disconnects: 3}
	r.RankedScore = model.ScoreDatum{GamesPlayed: 12, Wins: 8, Losses: 4,
		Points: 21, Rank: 5, HighestPoints: 24, HighestRank: 5, NumericalRank: 112}
	r.RankedScoresByGameType[model.GameTypeBodyCount] = model.ScoreDatum{GamesPlayed: 7, Wins: 5, Points: 15}
	r.RankedScoresByGameType[model.GameTypeCaptureTheFlag] = model.ScoreDatum{GamesPlayed: 5, Losses: 4, Points: -4}
	r.AddOpponent(11)
	r.AddOpponent(45)
	r.AddOpponent(99)
	r.Aux = model.AdditionalPlayerData{
		GameTypeFlags: model.GameTypeMyth2 | model.GameTypeFlags(1<<9),
		BuildVersion:  2150,
	}
	return r
}

func TestPlayerDocumentRoundTrip(t *testing.T) {
	in := richPlayer()

	out, err := PlayerFromDocument(PlayerToDocument(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFreshRecordDocumentRoundTrip(t *testing.T) {
	in := model.NewPlayerRecord(1)

	out, err := PlayerFromDocument(PlayerToDocument(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPlayerDocumentSurvivesJSON(t *testing.T) {
	in := richPlayer()

	// The storage path: document to JSON and back before rebuilding.
	raw, err := json.Marshal(PlayerToDocument(in))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	out, err := PlayerFromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDocumentCarriesPasswordSecret(t *testing.T) {
	in := richPlayer()

	doc := PlayerToDocument(in)
	assert.Equal(t, "watersofbalor", doc["password"],
		"the document form is lossless, secret included")
}

func TestDocumentFieldCoverage(t *testing.T) {
	doc := PlayerToDocument(richPlayer())

	for _, key := range []string{
		"player_id", "login", "password", "flags",
		"last_login_ip", "last_login_time", "last_game_time", "last_ranked_game_time",
		"room_id", "order_index", "icon_index", "icon_collection_name",
		"primary_color", "secondary_color", "name", "team_name", "description",
		"ban_duration", "banned_time", "times_banned", "country_code",
		"buddies", "unranked_score", "ranked_score", "ranked_scores_by_game_type",
		"last_opponent_index", "last_opponents", "aux_data",
	} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, "192.168.1.44", doc["last_login_ip"])
}

func TestFromDocumentTruncatesBoundedText(t *testing.T) {
	doc := PlayerToDocument(model.NewPlayerRecord(5))
	doc["login"] = strings.Repeat("a", 99)
	doc["description"] = strings.Repeat("d", model.MaxDescriptionLength+10)

	out, err := PlayerFromDocument(doc)
	require.NoError(t, err, "over-long text is policy, not an error")
	assert.Len(t, out.Login(), model.MaxLoginLength)
	assert.Len(t, out.Description(), model.MaxDescriptionLength)
}

func TestFromDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing field", func(m map[string]any) { delete(m, "flags") }},
		{"wrong scalar type", func(m map[string]any) { m["player_id"] = "ten" }},
		{"wrong nested type", func(m map[string]any) { m["primary_color"] = 7 }},
		{"bad timestamp", func(m map[string]any) { m["last_login_time"] = "yesterday" }},
		{"bad address", func(m map[string]any) { m["last_login_ip"] = "300.1.2.3" }},
		{"oversize list", func(m map[string]any) {
			entries := make([]any, model.MaxBuddies+1)
			for i := range entries {
				entries[i] = map[string]any{"player_id": int64(i + 1), "active": false}
			}
			m["buddies"] = entries
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := PlayerToDocument(richPlayer())
			tt.mutate(doc)

			_, err := PlayerFromDocument(doc)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
		})
	}
}

func TestShortListsFillPrefix(t *testing.T) {
	doc := PlayerToDocument(richPlayer())
	doc["buddies"] = []any{map[string]any{"player_id": int64(77), "active": true}}

	out, err := PlayerFromDocument(doc)
	require.NoError(t, err)
	assert.True(t, out.Buddies.Contains(77))
	assert.Equal(t, 1, out.Buddies.Count())
}

func TestOrderDocumentRoundTrip(t *testing.T) {
	in := model.NewOrderRecord(4, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	in.SetName("Heron Guard")
	in.SetMaintenancePassword("keeper")
	in.SetMemberPassword("guard")
	in.SetURL("http://example.org/heron")
	in.SetContactEmail("captain@example.org")
	in.SetMotto("We remember.")
	_ = in.Members.Insert(model.OrderMember{PlayerID: 310, Online: true}, model.RejectWhenFull)
	_ = in.Members.Insert(model.OrderMember{PlayerID: 11}, model.RejectWhenFull)
	in.RankedScore = model.ScoreDatum{GamesPlayed: 40, Wins: 25, Points: 63, HighestPoints: 70}
	in.RankedScoresByGameType[model.GameTypeTerritories] = model.ScoreDatum{GamesPlayed: 6, Wins: 6, Points: 18}

	out, err := OrderFromDocument(OrderToDocument(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)

	raw, err := json.Marshal(OrderToDocument(in))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	jsonOut, err := OrderFromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, in, jsonOut)
}
