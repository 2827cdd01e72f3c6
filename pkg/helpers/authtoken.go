package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthTokenManager signs and verifies the opaque value carried in the auth
// cookie: an HS256 token whose subject is the user id.
type AuthTokenManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewAuthTokenManager(secret string, ttl time.Duration) *AuthTokenManager {
	return &AuthTokenManager{Secret: []byte(secret), TTL: ttl}
}

type authClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Sign returns a signed token for userID along with its expiry.
func (m *AuthTokenManager) Sign(userID string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Verify parses the token and returns the embedded user id.
func (m *AuthTokenManager) Verify(tokenStr string) (string, error) {
	claims := &authClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.UserID == "" {
		return "", errors.New("invalid token")
	}
	return claims.UserID, nil
}
