package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/web/templates/components"
	"github.com/bagrada/mythmeta/internal/web/templates/layout"
)

// OnlineData is the state for the online sessions page
type OnlineData struct {
	layout.PageData
	Sessions []*model.OnlineSession
}

// Online renders the table of live sessions. The page subscribes to
// the presence event stream and swaps the table in place as players
// log in and out.
func Online(data OnlineData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<section class=\"online\">\n<h1>Online</h1>\n<div id=\"online-sessions\">\n"); err != nil {
			return err
		}
		if err := components.SessionsTable(data.Sessions).Render(ctx, w); err != nil {
			return err
		}
		script := "</div>\n<script>\n" +
			"const es = new EventSource(\"/online/events\");\n" +
			"es.addEventListener(\"presence-update\", (e) => {\n" +
			"  document.getElementById(\"online-sessions\").innerHTML = e.data;\n" +
			"});\n" +
			"</script>\n</section>\n"
		_, err := io.WriteString(w, script)
		return err
	})
	return layout.Base(data.PageData, body)
}
