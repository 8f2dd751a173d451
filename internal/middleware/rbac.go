package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

// selfPrefix marks an entry of RBAC's allow list that admits the caller when
// a path parameter equals their user id. "SELF" alone checks ":id";
// "SELF:reviewerId" checks ":reviewerId".
const selfPrefix = "SELF"

// RBAC enforces role-based access control for routes.
func RBAC(allowed ...string) gin.HandlerFunc {
	allowedRoles := make(map[models.UserRole]struct{})
	var selfParams []string
	for _, a := range allowed {
		if strings.HasPrefix(a, selfPrefix) {
			param := "id"
			if _, name, ok := strings.Cut(a, ":"); ok && name != "" {
				param = name
			}
			selfParams = append(selfParams, param)
			continue
		}
		allowedRoles[models.UserRole(a)] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowedRoles[claims.Role]; ok {
			c.Next()
			return
		}
		for _, param := range selfParams {
			if target := c.Param(param); target != "" && target == claims.UserID {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// RequireRoles is a helper that accepts a list of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(allowed...)
}

// RequireRolesOrSelf admits roles, or any caller whose id is the value of param.
func RequireRolesOrSelf(param string, roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, 0, len(roles)+1)
	for _, r := range roles {
		allowed = append(allowed, string(r))
	}
	allowed = append(allowed, selfPrefix+":"+param)
	return RBAC(allowed...)
}
