package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

type preferenceService interface {
	Get(ctx context.Context, userID, table string) (*models.TablePreferences, error)
	All(ctx context.Context, userID string) (*models.Preferences, error)
	Update(ctx context.Context, userID, table string, req dto.UpdatePreferencesRequest) (*models.TablePreferences, error)
}

type sessionService interface {
	Logout(ctx context.Context, userID string) error
}

// PreferenceHandler exposes per-user table preferences and logout.
type PreferenceHandler struct {
	prefs   preferenceService
	session sessionService
}

// NewPreferenceHandler constructs PreferenceHandler.
func NewPreferenceHandler(prefs preferenceService, session sessionService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs, session: session}
}

// All godoc
// @Summary Every table preference of the caller
// @Tags Preferences
// @Router /preferences [get]
func (h *PreferenceHandler) All(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	prefs, err := h.prefs.All(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prefs, nil)
}

// Get godoc
// @Summary One table's preferences
// @Tags Preferences
// @Param table path string true "Table name"
// @Router /preferences/{table} [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	prefs, err := h.prefs.Get(c.Request.Context(), userID, c.Param("table"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prefs, nil)
}

// Update godoc
// @Summary Merge table preferences
// @Tags Preferences
// @Param table path string true "Table name"
// @Param payload body dto.UpdatePreferencesRequest true "Fields to change"
// @Router /preferences/{table} [put]
func (h *PreferenceHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePreferencesRequest
	if !bindJSON(c, &req) {
		return
	}
	prefs, err := h.prefs.Update(c.Request.Context(), userID, c.Param("table"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prefs, nil)
}

// Logout godoc
// @Summary Clear the caller's cached data and preferences
// @Tags Session
// @Success 204
// @Router /session/logout [post]
func (h *PreferenceHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.session.Logout(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
