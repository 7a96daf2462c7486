package utils

import (
	"testing"
	"time"

	"servicehub/models"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestParsePrincipalRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", models.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	p, err := ParsePrincipal(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, models.Principal{UserID: "user-1", Role: models.RoleAdmin}, p)
}

func TestParsePrincipalRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", models.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParsePrincipal(token, "other-secret")
	assert.Error(t, err)
}

func TestParsePrincipalRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-1", models.RoleUser, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParsePrincipal(token, testSecret)
	assert.Error(t, err)
}

func TestParsePrincipalRejectsUnknownRole(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParsePrincipal(signed, testSecret)
	assert.ErrorIs(t, err, ErrInvalidRoleClaim)
}

func TestParsePrincipalDefaultsRoleToUser(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	p, err := ParsePrincipal(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, p.Role)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken("user-1", models.RoleUser, "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}
