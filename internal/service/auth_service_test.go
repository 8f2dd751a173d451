package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims models.JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func adminClaims(expiresIn time.Duration) models.JWTClaims {
	now := time.Now()
	return models.JWTClaims{
		UserID: "u1",
		Role:   models.RoleAdmin,
		Email:  "admin@example.org",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "research-api",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
}

func TestValidateToken(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{AccessTokenSecret: "secret", Issuer: "research-api"})

	claims, err := svc.ValidateToken(signToken(t, jwt.SigningMethodHS256, "secret", adminClaims(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{AccessTokenSecret: "secret", Issuer: "research-api"})
	wrongIssuer := adminClaims(time.Hour)
	wrongIssuer.Issuer = "someone-else"
	noUser := adminClaims(time.Hour)
	noUser.UserID = ""

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"wrong secret": signToken(t, jwt.SigningMethodHS256, "other", adminClaims(time.Hour)),
		"expired":      signToken(t, jwt.SigningMethodHS256, "secret", adminClaims(-time.Minute)),
		"wrong alg":    signToken(t, jwt.SigningMethodHS512, "secret", adminClaims(time.Hour)),
		"wrong issuer": signToken(t, jwt.SigningMethodHS256, "secret", wrongIssuer),
		"no user":      signToken(t, jwt.SigningMethodHS256, "secret", noUser),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
		})
	}
}
