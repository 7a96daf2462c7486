package utils

import (
	"errors"
	"time"

	"servicehub/models"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrMissingSecret    = errors.New("jwt secret is not configured")
	ErrInvalidSubject   = errors.New("token does not contain a valid 'sub' claim")
	ErrInvalidRoleClaim = errors.New("token does not contain a valid 'role' claim")
)

// GenerateToken creates a signed HS256 token for subject with the given role.
// Issuing tokens belongs to the identity service; this exists for tooling and tests.
func GenerateToken(subject string, role models.Role, secret string, duration time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString, secret string) (*jwt.Token, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
}

// ParsePrincipal validates tokenString and extracts the caller's user id and role.
func ParsePrincipal(tokenString, secret string) (models.Principal, error) {
	token, err := ValidateToken(tokenString, secret)
	if err != nil {
		return models.Principal{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Principal{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Principal{}, ErrInvalidSubject
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = string(models.RoleUser)
	}
	if !models.Role(role).Valid() {
		return models.Principal{}, ErrInvalidRoleClaim
	}

	return models.Principal{UserID: sub, Role: models.Role(role)}, nil
}
