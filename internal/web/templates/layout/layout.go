package layout

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/bagrada/mythmeta/internal/model"
)

// FlashMessage is a one-shot notification shown on the next page load
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData carries the state every page needs to render its chrome
type PageData struct {
	Title string
	// Session is the viewer's session, nil when logged out
	Session *model.OnlineSession
	// Admin is true when the viewer's record carries the admin flag
	Admin bool
	Flash *FlashMessage
}

// Base wraps a page body in the site chrome (head, nav, flash banner)
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\">\n")
		b.WriteString("<title>" + templ.EscapeString(data.Title) + " - Myth Metaserver</title>\n")
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/style.css\">\n")
		b.WriteString("</head>\n<body>\n")

		b.WriteString("<nav>\n<a href=\"/\" class=\"brand\">Myth Metaserver</a>\n")
		if data.Session != nil {
			b.WriteString("<a href=\"/players\">Players</a>\n")
			b.WriteString("<a href=\"/orders\">Orders</a>\n")
			b.WriteString("<a href=\"/online\">Online</a>\n")
			b.WriteString("<span class=\"user\">" + templ.EscapeString(data.Session.Name) + "</span>\n")
			b.WriteString("<form method=\"post\" action=\"/logout\"><button type=\"submit\">Log out</button></form>\n")
		} else {
			b.WriteString("<a href=\"/login\">Log in</a>\n")
		}
		b.WriteString("</nav>\n")

		if data.Flash != nil {
			b.WriteString("<div class=\"flash flash-" + templ.EscapeString(data.Flash.Type) + "\">")
			b.WriteString(templ.EscapeString(data.Flash.Message))
			b.WriteString("</div>\n")
		}

		b.WriteString("<main>\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
