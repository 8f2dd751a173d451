// Package mailer delivers outbound e-mail through SendGrid or, in
// development, to the log.
package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/pkg/config"
)

// Attachment is a file carried by a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a provider-neutral e-mail.
type Message struct {
	To          []mail.Address
	Cc          []mail.Address
	Subject     string
	TextContent string
	HTMLContent string
	Attachments []Attachment
}

// HasRecipients reports whether the message has at least one To address.
func (m Message) HasRecipients() bool {
	return len(m.To) > 0
}

// HasContent reports whether there is a body or attachment to send.
func (m Message) HasContent() bool {
	return strings.TrimSpace(m.TextContent) != "" || strings.TrimSpace(m.HTMLContent) != "" || len(m.Attachments) > 0
}

// Sender delivers a single message synchronously. Retries belong to the caller.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New selects a sender for the configured provider.
func New(cfg config.MailConfig, logger *zap.Logger) (Sender, error) {
	from := mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}
	switch cfg.Provider {
	case "", config.MailProviderConsole:
		return NewConsoleSender(from, cfg.SubjectPrefix, logger), nil
	case config.MailProviderSendgrid:
		if cfg.SendgridAPIKey == "" {
			return nil, fmt.Errorf("mailer: SENDGRID_API_KEY is required for the sendgrid provider")
		}
		return NewSendgridSender(cfg.SendgridAPIKey, from, cfg.SubjectPrefix, logger), nil
	default:
		return nil, fmt.Errorf("mailer: unknown provider %q", cfg.Provider)
	}
}

func validate(msg Message) error {
	if !msg.HasRecipients() {
		return fmt.Errorf("mailer: message %q has no recipients", msg.Subject)
	}
	if !msg.HasContent() {
		return fmt.Errorf("mailer: message %q has no content", msg.Subject)
	}
	return nil
}

func joinAddresses(addrs []mail.Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}
