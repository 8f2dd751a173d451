package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/grading"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

type preferenceStore interface {
	Get(ctx context.Context, userID string) (*models.Preferences, error)
	Save(ctx context.Context, prefs *models.Preferences) error
	Delete(ctx context.Context, userID string) error
}

// defaultTabs is the tab each table opens on when nothing is stored.
var defaultTabs = map[string]string{
	"students":    "",
	"proposals":   tabAll,
	"books":       tabAll,
	"results":     string(grading.StagePendingApproval),
	"faculty":     "",
	"courses":     "",
	"schools":     "",
	"campuses":    "",
	"departments": "",
}

// PreferenceService remembers page size, page and tab per user and table.
type PreferenceService struct {
	store           preferenceStore
	validator       *validator.Validate
	logger          *zap.Logger
	defaultPageSize int
	now             func() time.Time
}

// NewPreferenceService constructs the preference service.
func NewPreferenceService(store preferenceStore, defaultPageSize int, validate *validator.Validate, logger *zap.Logger) *PreferenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &PreferenceService{store: store, validator: validate, logger: logger, defaultPageSize: defaultPageSize, now: time.Now}
}

func (s *PreferenceService) defaults(tableName string) models.TablePreferences {
	return models.TablePreferences{PageSize: s.defaultPageSize, Page: 1, Tab: defaultTabs[tableName]}
}

func tableName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := defaultTabs[name]; !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "unknown table "+raw)
	}
	return name, nil
}

// load returns the stored preferences, or an empty set when none exist.
func (s *PreferenceService) load(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return &models.Preferences{UserID: userID, Tables: map[string]models.TablePreferences{}}, nil
		}
		return nil, err
	}
	if prefs.Tables == nil {
		prefs.Tables = map[string]models.TablePreferences{}
	}
	return prefs, nil
}

// Get returns one table's preferences with defaults for unset fields. A
// store outage degrades to defaults.
func (s *PreferenceService) Get(ctx context.Context, userID, table string) (*models.TablePreferences, error) {
	name, err := tableName(table)
	if err != nil {
		return nil, err
	}
	out := s.defaults(name)
	prefs, err := s.load(ctx, userID)
	if err != nil {
		s.logger.Warn("preferences unavailable, using defaults", zap.String("user_id", userID), zap.Error(err))
		return &out, nil
	}
	merge(&out, prefs.Tables[name])
	return &out, nil
}

// All returns every known table's preferences.
func (s *PreferenceService) All(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs, err := s.load(ctx, userID)
	if err != nil {
		s.logger.Warn("preferences unavailable, using defaults", zap.String("user_id", userID), zap.Error(err))
		prefs = &models.Preferences{UserID: userID, Tables: map[string]models.TablePreferences{}}
	}
	out := &models.Preferences{UserID: userID, Tables: make(map[string]models.TablePreferences, len(defaultTabs)), UpdatedAt: prefs.UpdatedAt}
	for name := range defaultTabs {
		table := s.defaults(name)
		merge(&table, prefs.Tables[name])
		out.Tables[name] = table
	}
	return out, nil
}

// Update merges the non-nil fields of req into the stored preferences.
func (s *PreferenceService) Update(ctx context.Context, userID, table string, req dto.UpdatePreferencesRequest) (*models.TablePreferences, error) {
	if err := requireID(userID, "user"); err != nil {
		return nil, err
	}
	name, err := tableName(table)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid preferences"); err != nil {
		return nil, err
	}
	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preferences")
	}

	stored := prefs.Tables[name]
	if req.PageSize != nil {
		stored.PageSize = *req.PageSize
		// a new page size invalidates the remembered page
		if req.Page == nil {
			stored.Page = 1
		}
	}
	if req.Page != nil {
		stored.Page = *req.Page
	}
	if req.Tab != nil {
		stored.Tab = strings.TrimSpace(*req.Tab)
		if req.Page == nil {
			stored.Page = 1
		}
	}
	prefs.Tables[name] = stored
	prefs.UserID = userID
	prefs.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, prefs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save preferences")
	}
	out := s.defaults(name)
	merge(&out, stored)
	return &out, nil
}

// Clear forgets every preference of the user.
func (s *PreferenceService) Clear(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear preferences")
	}
	return nil
}

func merge(dst *models.TablePreferences, stored models.TablePreferences) {
	if stored.PageSize > 0 {
		dst.PageSize = stored.PageSize
	}
	if stored.Page > 0 {
		dst.Page = stored.Page
	}
	if stored.Tab != "" {
		dst.Tab = stored.Tab
	}
}
