package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/bagrada/mythmeta/internal/web/templates/layout"
)

// LoginData is the state for the login page
type LoginData struct {
	layout.PageData
	Login string
	Error string
	Next  string
}

// Login renders the login page
func Login(data LoginData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"login\">\n<h1>Log in</h1>\n")
		if data.Error != "" {
			b.WriteString("<p class=\"error\">" + templ.EscapeString(data.Error) + "</p>\n")
		}
		b.WriteString("<form method=\"post\" action=\"/login\">\n")
		b.WriteString("<label>Login <input type=\"text\" name=\"login\" value=\"" + templ.EscapeString(data.Login) + "\"></label>\n")
		b.WriteString("<label>Password <input type=\"password\" name=\"password\"></label>\n")
		if data.Next != "" {
			b.WriteString("<input type=\"hidden\" name=\"next\" value=\"" + templ.EscapeString(data.Next) + "\">\n")
		}
		b.WriteString("<button type=\"submit\">Log in</button>\n</form>\n</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base(data.PageData, body)
}
