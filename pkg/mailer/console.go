package mailer

import (
	"context"
	"net/mail"
	"sync"

	"go.uber.org/zap"
)

// ConsoleSender logs messages instead of delivering them and keeps a copy
// of everything it was asked to send.
type ConsoleSender struct {
	from       mail.Address
	subjPrefix string
	logger     *zap.Logger

	mu   sync.Mutex
	sent []Message
}

var _ Sender = (*ConsoleSender)(nil)

// NewConsoleSender builds a development sender.
func NewConsoleSender(from mail.Address, subjPrefix string, logger *zap.Logger) *ConsoleSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleSender{from: from, subjPrefix: subjPrefix, logger: logger}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	if err := validate(msg); err != nil {
		return err
	}
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Filename)
	}
	s.logger.Info("email",
		zap.String("from", s.from.String()),
		zap.String("to", joinAddresses(msg.To)),
		zap.String("cc", joinAddresses(msg.Cc)),
		zap.String("subject", s.subjPrefix+msg.Subject),
		zap.String("text", msg.TextContent),
		zap.Strings("attachments", names))

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of the delivered messages.
func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
