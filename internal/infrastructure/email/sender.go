package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers account emails. Implementations must be safe for use from
// concurrent fire-and-forget goroutines.
type Sender interface {
	SendConfirmation(ctx context.Context, to, username, baseURL, token string) error
	SendPasswordReset(ctx context.Context, to, username, baseURL, token string) error
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<p>Hi {{.Username}},</p>
<p>Thank you for registering. Please confirm your email address by following the link below:</p>
<p><a href="{{.Link}}">Confirm email</a></p>
<p>The link is valid for 7 days. If you did not register, ignore this message.</p>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`
<p>Hi {{.Username}},</p>
<p>A password reset was requested for your account. Follow the link below to choose a new password:</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>The link is valid for 7 days. If you did not request a reset, ignore this message.</p>
`))

// SendgridSender delivers mail through the SendGrid API.
type SendgridSender struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendgridSender(apiKey, from, fromName string) *SendgridSender {
	return &SendgridSender{apiKey: apiKey, from: from, fromName: fromName}
}

func (s *SendgridSender) SendConfirmation(ctx context.Context, to, username, baseURL, token string) error {
	link := fmt.Sprintf("%s/api/auth/confirmed_email/%s", baseURL, token)
	return s.send(ctx, to, "Confirm your email", confirmationTemplate, username, link)
}

func (s *SendgridSender) SendPasswordReset(ctx context.Context, to, username, baseURL, token string) error {
	link := fmt.Sprintf("%s/api/auth/reset_password/%s", baseURL, token)
	return s.send(ctx, to, "Reset your password", resetTemplate, username, link)
}

func (s *SendgridSender) send(ctx context.Context, to, subject string, tmpl *template.Template, username, link string) error {
	var body bytes.Buffer
	err := tmpl.Execute(&body, struct {
		Username string
		Link     string
	}{Username: username, Link: link})
	if err != nil {
		return err
	}

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(username, to)
	message := mail.NewSingleEmail(from, subject, recipient, link, body.String())

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		log.Printf("failed to send %q email to %s: %v", subject, to, err)
		return err
	}
	log.Printf("sent %q email to %s, status %d", subject, to, response.StatusCode)
	return nil
}
