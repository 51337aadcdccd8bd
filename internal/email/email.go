// Package email wraps outbound mail behind a small interface so services
// never depend on the Resend client directly.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

type Sender interface {
	// SendVerification emails the account-verification link. The token is
	// plaintext here; only its hash is stored server-side.
	SendVerification(ctx context.Context, toEmail, token string) error
	// SendScoreNotification tells a student their submission was scored.
	SendScoreNotification(ctx context.Context, toEmail, setTitle string, score int) error
}

type resendSender struct {
	client *resend.Client
	from   string
	appURL string
}

func NewResendSender(apiKey, from, appURL string) Sender {
	return &resendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		appURL: appURL,
	}
}

func (s *resendSender) SendVerification(ctx context.Context, toEmail, token string) error {
	link := fmt.Sprintf("%s/auth/verify?token=%s", s.appURL, token)
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Verify your account",
		Html: fmt.Sprintf(
			`<p>Welcome! Confirm your email to unlock course and classroom creation:</p><p><a href="%s">Verify my account</a></p>`,
			link),
	})
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *resendSender) SendScoreNotification(ctx context.Context, toEmail, setTitle string, score int) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Your practice sheet %q was scored", setTitle),
		Html:    fmt.Sprintf(`<p>Your submission for %q received a score of <strong>%d/100</strong>.</p>`, setTitle, score),
	})
	if err != nil {
		return fmt.Errorf("failed to send score email: %w", err)
	}
	return nil
}

// NopSender discards all mail. Used in tests and when no API key is set.
type NopSender struct{}

func (NopSender) SendVerification(context.Context, string, string) error           { return nil }
func (NopSender) SendScoreNotification(context.Context, string, string, int) error { return nil }
