package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

type preferenceServiceMock struct {
	updated   dto.UpdatePreferencesRequest
	userID    string
	loggedOut string
}

func (m *preferenceServiceMock) Get(ctx context.Context, userID, table string) (*models.TablePreferences, error) {
	if table == "unknown" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown table unknown")
	}
	return &models.TablePreferences{PageSize: 10, Page: 1}, nil
}

func (m *preferenceServiceMock) All(ctx context.Context, userID string) (*models.Preferences, error) {
	return &models.Preferences{UserID: userID}, nil
}

func (m *preferenceServiceMock) Update(ctx context.Context, userID, table string, req dto.UpdatePreferencesRequest) (*models.TablePreferences, error) {
	m.userID = userID
	m.updated = req
	return &models.TablePreferences{PageSize: *req.PageSize, Page: 1}, nil
}

func (m *preferenceServiceMock) Logout(ctx context.Context, userID string) error {
	m.loggedOut = userID
	return nil
}

func TestPreferenceUpdateUsesCaller(t *testing.T) {
	svc := &preferenceServiceMock{}
	h := NewPreferenceHandler(svc, svc)

	c, w := adminContext(http.MethodPut, "/preferences/students", []byte(`{"pageSize":25}`))
	c.Params = gin.Params{{Key: "table", Value: "students"}}
	h.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", svc.userID)
	require.NotNil(t, svc.updated.PageSize)
	assert.Equal(t, 25, *svc.updated.PageSize)
}

func TestPreferenceGetUnknownTable(t *testing.T) {
	svc := &preferenceServiceMock{}
	h := NewPreferenceHandler(svc, svc)

	c, w := adminContext(http.MethodGet, "/preferences/unknown", nil)
	c.Params = gin.Params{{Key: "table", Value: "unknown"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutClearsCallerSession(t *testing.T) {
	svc := &preferenceServiceMock{}
	h := NewPreferenceHandler(svc, svc)

	c, w := adminContext(http.MethodPost, "/session/logout", nil)
	h.Logout(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "admin-1", svc.loggedOut)
}
