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

// OrdersData is the state for the order listing page
type OrdersData struct {
	layout.PageData
	Orders []*model.OrderRecord
}

// Orders renders the order listing table
func Orders(data OrdersData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"orders\">\n<h1>Orders</h1>\n")
		b.WriteString("<table>\n<thead><tr><th>ID</th><th>Name</th><th>Members</th><th>Ranked points</th><th>Founded</th></tr></thead>\n<tbody>\n")
		for _, o := range data.Orders {
			id := strconv.FormatUint(uint64(o.ID), 10)
			b.WriteString("<tr class=\"order\">")
			b.WriteString("<td>" + id + "</td>")
			b.WriteString("<td><a href=\"/orders/" + id + "\">" + templ.EscapeString(o.Name()) + "</a></td>")
			b.WriteString("<td>" + strconv.Itoa(o.Members.Count()) + "</td>")
			b.WriteString("<td>" + strconv.FormatInt(int64(o.RankedScore.Points), 10) + "</td>")
			b.WriteString("<td>" + o.FoundingDate.Format("2006-01-02") + "</td>")
			b.WriteString("</tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base(data.PageData, body)
}

// OrderDetailData is the state for a single order page
type OrderDetailData struct {
	layout.PageData
	Order *model.OrderRecord
	// Members holds the records for occupied roster slots
	Members []*model.PlayerRecord
}

// OrderDetail renders an order's profile and roster
func OrderDetail(data OrderDetailData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := data.Order

		var b strings.Builder
		b.WriteString("<section class=\"order-detail\">\n")
		b.WriteString("<h1>" + templ.EscapeString(o.Name()) + "</h1>\n")

		b.WriteString("<dl class=\"profile\">\n")
		writeDef(&b, "Motto", o.Motto())
		writeDef(&b, "URL", o.URL())
		writeDef(&b, "Contact", o.ContactEmail())
		writeDef(&b, "Founded", o.FoundingDate.Format("2006-01-02"))
		b.WriteString("</dl>\n")

		b.WriteString("<h2>Roster</h2>\n<table class=\"roster\">\n")
		b.WriteString("<thead><tr><th>Name</th><th>Login</th><th>Ranked points</th></tr></thead>\n<tbody>\n")
		for _, m := range data.Members {
			id := strconv.FormatUint(uint64(m.ID), 10)
			b.WriteString("<tr class=\"member\">")
			b.WriteString("<td><a href=\"/players/" + id + "\">" + templ.EscapeString(m.Name()) + "</a></td>")
			b.WriteString("<td>" + templ.EscapeString(m.Login()) + "</td>")
			b.WriteString("<td>" + strconv.FormatInt(int64(m.RankedScore.Points), 10) + "</td>")
			b.WriteString("</tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n")

		b.WriteString("<h2>Scores</h2>\n<table class=\"scores\">\n")
		b.WriteString("<thead><tr><th></th><th>Games</th><th>Wins</th><th>Losses</th><th>Ties</th><th>Points</th><th>Rank</th></tr></thead>\n<tbody>\n")
		writeScoreRow(&b, "Unranked", o.UnrankedScore)
		writeScoreRow(&b, "Ranked", o.RankedScore)
		b.WriteString("</tbody>\n</table>\n</section>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base(data.PageData, body)
}
