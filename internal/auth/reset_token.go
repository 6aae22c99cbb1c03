package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ResetTokenManager issues and validates signed password-reset tokens. These
// are embedded in mail links, so they must be self-contained and expiring.
type ResetTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewResetTokenManager builds a new manager.
func NewResetTokenManager(secret string, ttl time.Duration) *ResetTokenManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResetTokenManager{secret: []byte(secret), ttl: ttl}
}

// ResetClaims is the reset token payload.
type ResetClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Generate builds and signs a reset token for the user.
func (m *ResetTokenManager) Generate(userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.ttl)
	claims := &ResetClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates a reset token and returns the user id it was issued for.
func (m *ResetTokenManager) Parse(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*ResetClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token claims")
	}
	return claims.UserID, nil
}
