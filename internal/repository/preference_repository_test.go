package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

func TestPreferenceRepositoryRoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewPreferenceRepository(client)

	prefs := &models.Preferences{
		UserID:    "user-1",
		Tables:    map[string]models.TablePreferences{"students": {PageSize: 25, Page: 2}},
		UpdatedAt: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(prefs)
	require.NoError(t, err)

	mock.ExpectSet("rag:prefs:user-1", payload, 0).SetVal("OK")
	require.NoError(t, repo.Save(context.Background(), prefs))

	mock.ExpectGet("rag:prefs:user-1").SetVal(string(payload))
	got, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, 25, got.Tables["students"].PageSize)

	mock.ExpectDel("rag:prefs:user-1").SetVal(1)
	require.NoError(t, repo.Delete(context.Background(), "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepositoryMissing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewPreferenceRepository(client)

	mock.ExpectGet("rag:prefs:ghost").RedisNil()
	_, err := repo.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCacheRepositoryGetSetAndDeletePattern(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client, nil)

	mock.ExpectSet("rag:q:u1:students:all", []byte(`["a"]`), time.Minute).SetVal("OK")
	require.NoError(t, repo.Set(context.Background(), "rag:q:u1:students:all", []string{"a"}, time.Minute))

	mock.ExpectGet("rag:q:u1:students:all").SetVal(`["a"]`)
	var out []string
	require.NoError(t, repo.Get(context.Background(), "rag:q:u1:students:all", &out))
	require.Equal(t, []string{"a"}, out)

	mock.ExpectGet("rag:q:u1:books:all").RedisNil()
	require.ErrorIs(t, repo.Get(context.Background(), "rag:q:u1:books:all", &out), appErrors.ErrCacheMiss)

	mock.ExpectScan(0, "rag:q:*:students:*", scanBatch).SetVal([]string{"rag:q:u1:students:all"}, 0)
	mock.ExpectDel("rag:q:u1:students:all").SetVal(1)
	require.NoError(t, repo.DeleteByPattern(context.Background(), "rag:q:*:students:*"))
	require.NoError(t, mock.ExpectationsWereMet())
}
