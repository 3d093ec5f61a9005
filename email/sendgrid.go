package email

import (
	"context"
	"fmt"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid sends transactional mail through the SendGrid API.
type SendGrid struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGrid(apiKey, from, fromName string) *SendGrid {
	return &SendGrid{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

// SendPasswordReset emails a reset link. The link embeds a short-lived
// signed token; nothing about the account leaks into the message.
func (s *SendGrid) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail("", to)
	plain := "Reset your password using this link: " + resetURL +
		"\nThe link expires shortly. If you did not request this, ignore this email."
	html := fmt.Sprintf(
		`<p>Reset your password using <a href=%q>this link</a>.</p><p>The link expires shortly. If you did not request this, ignore this email.</p>`,
		resetURL,
	)
	message := mail.NewSingleEmail(from, "Reset your password", recipient, plain, html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", response.StatusCode)
	}
	return nil
}
