package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/bagrada/mythmeta/internal/model"
)

// SessionsTable renders the live sessions table. It is shared between
// the online page and the SSE broadcaster so pushed updates replace
// the same markup the page served.
func SessionsTable(sessions []*model.OnlineSession) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<table>\n<thead><tr><th>Slot</th><th>Name</th><th>Login</th><th>Room</th><th>Build</th><th>Since</th></tr></thead>\n<tbody>\n")
		for _, s := range sessions {
			b.WriteString("<tr class=\"session\">")
			b.WriteString("<td>" + strconv.FormatInt(int64(s.DataIndex), 10) + "</td>")
			b.WriteString("<td><a href=\"/players/" + strconv.FormatUint(uint64(s.PlayerID), 10) + "\">" + templ.EscapeString(s.Name) + "</a></td>")
			b.WriteString("<td>" + templ.EscapeString(s.Login) + "</td>")
			b.WriteString("<td>" + strconv.FormatInt(int64(s.RoomID), 10) + "</td>")
			b.WriteString("<td>" + strconv.FormatInt(int64(s.Version), 10) + "</td>")
			b.WriteString("<td>" + s.LoggedInAt.Format("15:04:05") + "</td>")
			b.WriteString("</tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}
