package httpapi

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

var pageTemplates = template.Must(template.New("reset_password").Parse(`<!DOCTYPE html>
<html>
<head><title>Reset password</title></head>
<body>
  <h1>Choose a new password</h1>
  <p>Resetting the password for <strong>{{.Username}}</strong>.</p>
  <form method="post" action="{{.Action}}">
    <label for="password">New password</label>
    <input type="password" id="password" name="password" required minlength="8">
    <button type="submit">Reset password</button>
  </form>
</body>
</html>
`))

// htmlRenderer plugs the password-reset form into echo's Renderer contract.
type htmlRenderer struct {
	templates *template.Template
}

func newHTMLRenderer() *htmlRenderer {
	return &htmlRenderer{templates: pageTemplates}
}

func (r *htmlRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
