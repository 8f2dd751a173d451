package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/pkg/cache"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

// PreferenceRepository keeps per-user table preferences in Redis without
// expiry so they survive reloads and gateway restarts.
type PreferenceRepository struct {
	client redis.UniversalClient
}

// NewPreferenceRepository constructs the repository.
func NewPreferenceRepository(client redis.UniversalClient) *PreferenceRepository {
	return &PreferenceRepository{client: client}
}

func preferenceKey(userID string) string {
	return cache.Key("prefs", userID)
}

// Get returns the stored preferences or ErrNotFound.
func (r *PreferenceRepository) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	raw, err := r.client.Get(ctx, preferenceKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	var prefs models.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &prefs, nil
}

// Save overwrites the user's preferences.
func (r *PreferenceRepository) Save(ctx context.Context, prefs *models.Preferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := r.client.Set(ctx, preferenceKey(prefs.UserID), payload, 0).Err(); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Delete removes the user's preferences.
func (r *PreferenceRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, preferenceKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
