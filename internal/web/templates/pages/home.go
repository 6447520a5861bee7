package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/bagrada/mythmeta/internal/web/templates/layout"
)

// HomeData is the state for the dashboard home page
type HomeData struct {
	layout.PageData
	PlayerCount int
	OrderCount  int
	OnlineCount int
}

// Home renders the dashboard home page
func Home(data HomeData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"dashboard\">\n<h1>Metaserver</h1>\n")
		if data.Session == nil {
			b.WriteString("<p>Log in to browse the player roster.</p>\n")
		} else {
			b.WriteString("<ul class=\"stats\">\n")
			b.WriteString("<li><a href=\"/players\"><span class=\"stat\">" + strconv.Itoa(data.PlayerCount) + "</span> players</a></li>\n")
			b.WriteString("<li><a href=\"/orders\"><span class=\"stat\">" + strconv.Itoa(data.OrderCount) + "</span> orders</a></li>\n")
			b.WriteString("<li><a href=\"/online\"><span class=\"stat\">" + strconv.Itoa(data.OnlineCount) + "</span> online</a></li>\n")
			b.WriteString("</ul>\n")
		}
		b.WriteString("</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base(data.PageData, body)
}
