// Package email provides outbound email delivery for reminders.
package email

import "context"

// Sender delivers a single rendered email message.
type Sender interface {
	Send(ctx context.Context, toEmail, subject, body string) error
}

// NoopSender discards messages. Used when no SMTP server is configured so
// local development still exercises the full scheduling path.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, toEmail, subject, body string) error {
	return nil
}
