package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

// memoryPreferenceStore serialises like the redis repository so a second
// service reading the same store sees what a reload would see.
type memoryPreferenceStore struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func (m *memoryPreferenceStore) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[userID]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	var prefs models.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (m *memoryPreferenceStore) Save(ctx context.Context, prefs *models.Preferences) error {
	if m.err != nil {
		return m.err
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[prefs.UserID] = raw
	return nil
}

func (m *memoryPreferenceStore) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID)
	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestPreferenceServiceDefaults(t *testing.T) {
	svc := NewPreferenceService(&memoryPreferenceStore{}, 25, nil, nil)

	prefs, err := svc.Get(context.Background(), "u1", "results")
	require.NoError(t, err)
	assert.Equal(t, models.TablePreferences{PageSize: 25, Page: 1, Tab: "pending_approval"}, *prefs)

	_, err = svc.Get(context.Background(), "u1", "timetable")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestPreferenceServiceSurvivesReload(t *testing.T) {
	store := &memoryPreferenceStore{}
	first := NewPreferenceService(store, 10, nil, nil)

	_, err := first.Update(context.Background(), "u1", "students", dto.UpdatePreferencesRequest{PageSize: intPtr(50), Page: intPtr(3)})
	require.NoError(t, err)
	_, err = first.Update(context.Background(), "u1", "books", dto.UpdatePreferencesRequest{Tab: strPtr("graded")})
	require.NoError(t, err)

	reloaded := NewPreferenceService(store, 10, nil, nil)
	students, err := reloaded.Get(context.Background(), "u1", "students")
	require.NoError(t, err)
	assert.Equal(t, models.TablePreferences{PageSize: 50, Page: 3}, *students)

	books, err := reloaded.Get(context.Background(), "u1", "books")
	require.NoError(t, err)
	assert.Equal(t, models.TablePreferences{PageSize: 10, Page: 1, Tab: "graded"}, *books)

	all, err := reloaded.All(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, all.Tables, len(defaultTabs))
	assert.Equal(t, 50, all.Tables["students"].PageSize)
}

func TestPreferenceServiceUpdateMergesAndResetsPage(t *testing.T) {
	svc := NewPreferenceService(&memoryPreferenceStore{}, 10, nil, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", "students", dto.UpdatePreferencesRequest{Page: intPtr(4)})
	require.NoError(t, err)
	out, err := svc.Update(ctx, "u1", "students", dto.UpdatePreferencesRequest{PageSize: intPtr(20)})
	require.NoError(t, err)
	assert.Equal(t, models.TablePreferences{PageSize: 20, Page: 1}, *out)

	_, err = svc.Update(ctx, "u1", "students", dto.UpdatePreferencesRequest{PageSize: intPtr(-5)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestPreferenceServiceDegradesWhenStoreDown(t *testing.T) {
	store := &memoryPreferenceStore{err: errors.New("connection refused")}
	svc := NewPreferenceService(store, 15, nil, nil)

	prefs, err := svc.Get(context.Background(), "u1", "faculty")
	require.NoError(t, err)
	assert.Equal(t, 15, prefs.PageSize)

	_, err = svc.Update(context.Background(), "u1", "faculty", dto.UpdatePreferencesRequest{Page: intPtr(2)})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestSessionLogoutClearsScopeAndPreferences(t *testing.T) {
	store := &memoryPreferenceStore{}
	prefs := NewPreferenceService(store, 10, nil, nil)
	queries := newTestQueries()
	students := &mockStudentAPI{}
	studentSvc := NewStudentService(students, queries, nil, nil)

	_, _, _, err := studentSvc.List(scoped("u1"), models.StudentFilter{})
	require.NoError(t, err)
	_, _, _, err = studentSvc.List(scoped("u2"), models.StudentFilter{})
	require.NoError(t, err)
	_, err = prefs.Update(context.Background(), "u1", "students", dto.UpdatePreferencesRequest{PageSize: intPtr(30)})
	require.NoError(t, err)
	require.Equal(t, 2, queries.Len())

	session := NewSessionService(queries, prefs, nil)
	require.NoError(t, session.Logout(context.Background(), "u1"))
	assert.Equal(t, 1, queries.Len())

	after, err := prefs.Get(context.Background(), "u1", "students")
	require.NoError(t, err)
	assert.Equal(t, 10, after.PageSize)

	assert.ErrorIs(t, session.Logout(context.Background(), " "), appErrors.ErrValidation)
}
