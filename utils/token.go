package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	models "github.com/cybersecclub/club-site-go/models"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Claims carried by both access and refresh tokens. Role is embedded so
// the middleware can hand the controllers a (user_id, role) pair without
// a user lookup per request.
type Claims struct {
	Role    string `json:"role"`
	Refresh bool   `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a signed access token for the user.
func GenerateAccessToken(user *models.User, secret string) (string, error) {
	return signToken(user, secret, accessTokenTTL, false)
}

// GenerateRefreshToken issues a longer-lived refresh token.
func GenerateRefreshToken(user *models.User, secret string) (string, error) {
	return signToken(user, secret, refreshTokenTTL, true)
}

func signToken(user *models.User, secret string, ttl time.Duration, refresh bool) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:    user.Role,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
