package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/query"
)

type preferenceClearer interface {
	Clear(ctx context.Context, userID string) error
}

// SessionService tears down per-user state when the admin UI logs out.
type SessionService struct {
	queries *query.Client
	prefs   preferenceClearer
	logger  *zap.Logger
}

// NewSessionService constructs the session service.
func NewSessionService(queries *query.Client, prefs preferenceClearer, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{queries: queries, prefs: prefs, logger: logger}
}

// Logout drops the user's cached queries and stored preferences.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	if err := requireID(userID, "user"); err != nil {
		return err
	}
	if s.queries != nil {
		s.queries.Clear(ctx, userID)
	}
	if s.prefs != nil {
		if err := s.prefs.Clear(ctx, userID); err != nil {
			return err
		}
	}
	s.logger.Info("session closed", zap.String("user_id", userID))
	return nil
}
