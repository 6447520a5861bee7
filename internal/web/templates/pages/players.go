package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/web/templates/layout"
)

// PlayersData is the state for the player roster page
type PlayersData struct {
	layout.PageData
	Players []*model.PlayerRecord
}

// Players renders the player roster table
func Players(data PlayersData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"roster\">\n<h1>Players</h1>\n")
		b.WriteString("<table>\n<thead><tr><th>ID</th><th>Name</th><th>Login</th><th>Ranked points</th><th>Games</th><th></th></tr></thead>\n<tbody>\n")
		for _, p := range data.Players {
			id := strconv.FormatUint(uint64(p.ID), 10)
			b.WriteString("<tr class=\"player\">")
			b.WriteString("<td>" + id + "</td>")
			b.WriteString("<td><a href=\"/players/" + id + "\">" + templ.EscapeString(p.Name()) + "</a></td>")
			b.WriteString("<td>" + templ.EscapeString(p.Login()) + "</td>")
			b.WriteString("<td>" + strconv.FormatInt(int64(p.RankedScore.Points), 10) + "</td>")
			b.WriteString("<td>" + strconv.FormatUint(uint64(p.RankedScore.GamesPlayed), 10) + "</td>")
			if p.Flags.IsBanned() {
				b.WriteString("<td><span class=\"badge banned\">banned</span></td>")
			} else {
				b.WriteString("<td></td>")
			}
			b.WriteString("</tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base(data.PageData, body)
}

// PlayerDetailData is the state for a single player page
type PlayerDetailData struct {
	layout.PageData
	Player *model.PlayerRecord
	// Order is the player's order, nil when unaffiliated
	Order  *model.OrderRecord
	Online bool
}

// PlayerDetail renders a player's profile, scores and moderation forms
func PlayerDetail(data PlayerDetailData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := data.Player
		id := strconv.FormatUint(uint64(p.ID), 10)

		var b strings.Builder
		b.WriteString("<section class=\"player-detail\">\n")
		b.WriteString("<h1>" + templ.EscapeString(p.Name()) + "</h1>\n")
		if data.Online {
			b.WriteString("<p class=\"badge online\">online</p>\n")
		}
		if p.Flags.IsBanned() {
			b.WriteString("<p class=\"badge banned\">banned</p>\n")
		}

		b.WriteString("<dl class=\"profile\">\n")
		writeDef(&b, "Login", p.Login())
		writeDef(&b, "Team", p.TeamName())
		writeDef(&b, "Description", p.Description())
		if p.OrderIndex != 0 && data.Order != nil {
			b.WriteString("<dt>Order</dt><dd><a href=\"/orders/" + strconv.FormatInt(int64(p.OrderIndex), 10) + "\">" + templ.EscapeString(data.Order.Name()) + "</a></dd>\n")
		}
		if !p.LastLoginTime.IsZero() {
			writeDef(&b, "Last login", p.LastLoginTime.Format("2006-01-02 15:04 MST"))
		}
		if p.TimesBanned > 0 {
			writeDef(&b, "Times banned", strconv.FormatInt(int64(p.TimesBanned), 10))
		}
		b.WriteString("</dl>\n")

		b.WriteString("<h2>Scores</h2>\n<table class=\"scores\">\n")
		b.WriteString("<thead><tr><th></th><th>Games</th><th>Wins</th><th>Losses</th><th>Ties</th><th>Points</th><th>Rank</th></tr></thead>\n<tbody>\n")
		writeScoreRow(&b, "Unranked", p.UnrankedScore)
		writeScoreRow(&b, "Ranked", p.RankedScore)
		for i, d := range p.RankedScoresByGameType {
			if d.GamesPlayed == 0 {
				continue
			}
			writeScoreRow(&b, model.GameType(i).String(), d)
		}
		b.WriteString("</tbody>\n</table>\n")

		if data.Admin {
			b.WriteString("<h2>Moderation</h2>\n")
			if p.Flags.IsBanned() {
				b.WriteString("<form method=\"post\" action=\"/players/" + id + "/unban\" class=\"unban\">")
				b.WriteString("<button type=\"submit\">Lift ban</button></form>\n")
			} else {
				b.WriteString("<form method=\"post\" action=\"/players/" + id + "/ban\" class=\"ban\">\n")
				b.WriteString("<label>Duration <select name=\"duration_hours\">")
				b.WriteString("<option value=\"1\">1 hour</option>")
				b.WriteString("<option value=\"24\">1 day</option>")
				b.WriteString("<option value=\"168\">1 week</option>")
				b.WriteString("<option value=\"0\">Indefinite</option>")
				b.WriteString("</select></label>\n")
				b.WriteString("<button type=\"submit\">Ban player</button>\n</form>\n")
			}
		}

		b.WriteString("</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base(data.PageData, body)
}

func writeDef(b *strings.Builder, term, def string) {
	if def == "" {
		return
	}
	b.WriteString("<dt>" + templ.EscapeString(term) + "</dt><dd>" + templ.EscapeString(def) + "</dd>\n")
}

func writeScoreRow(b *strings.Builder, label string, d model.ScoreDatum) {
	b.WriteString("<tr>")
	b.WriteString("<th>" + templ.EscapeString(label) + "</th>")
	b.WriteString("<td>" + strconv.FormatUint(uint64(d.GamesPlayed), 10) + "</td>")
	b.WriteString("<td>" + strconv.FormatUint(uint64(d.Wins), 10) + "</td>")
	b.WriteString("<td>" + strconv.FormatUint(uint64(d.Losses), 10) + "</td>")
	b.WriteString("<td>" + strconv.FormatUint(uint64(d.Ties), 10) + "</td>")
	b.WriteString("<td>" + strconv.FormatInt(int64(d.Points), 10) + "</td>")
	b.WriteString("<td>" + strconv.FormatInt(int64(d.NumericalRank), 10) + "</td>")
	b.WriteString("</tr>\n")
}
