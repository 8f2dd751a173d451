package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/middleware"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// currentUserID writes 401 and returns false when no user is attached.
func currentUserID(c *gin.Context) (string, bool) {
	claims := claimsFromContext(c)
	if claims == nil || claims.UserID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

// bindJSON decodes the body into dest and writes a 400 on failure.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

// pageParams reads page and limit; zero means the table default.
func pageParams(c *gin.Context) (page, size int) {
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		size = v
	}
	return page, size
}

func gradeFilter(c *gin.Context) models.GradeFilter {
	page, size := pageParams(c)
	return models.GradeFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Tab:       strings.TrimSpace(c.Query("tab")),
		Page:      page,
		PageSize:  size,
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
}

// respondRead writes a cached read with its freshness in meta.
func respondRead(c *gin.Context, data interface{}, pagination *models.Pagination, fresh query.Freshness) {
	middleware.SetFreshness(c, fresh)
	response.JSON(c, http.StatusOK, data, pagination, middleware.ExtractMeta(c))
}
