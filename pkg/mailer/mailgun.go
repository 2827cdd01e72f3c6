package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun delivers board invitation emails. The client is rebuilt per send;
// the worker's volume is one message per member-add, so pooling buys nothing.
type Mailgun struct {
	Domain  string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string, timeout time.Duration) *Mailgun {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender, Timeout: timeout}
}

// Send delivers one message. An empty html falls back to the plain-text
// body only.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
