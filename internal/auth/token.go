// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"bayou-blog/internal/messages"
	"bayou-blog/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies HS256 bearer tokens carrying the subject
// email. Expiry is the only invalidation mechanism; there is no revocation
// list, so a leaked token stays valid until it expires.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests to simulate expiry.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue creates a signed token with claims {sub: email, exp: now + lifetime}.
func (s *TokenService) Issue(email string) (string, error) {
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.lifetime)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, structure and expiry and returns the subject
// email. Expired and malformed tokens fail with distinct codes; the HTTP
// boundary collapses both into one credentials-incorrect response.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", utils.NewAppError(utils.ErrTokenExpired, messages.TokenDecodeError, err)
		}
		return "", utils.NewAppError(utils.ErrInvalidToken, messages.TokenDecodeError, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", utils.NewAppError(utils.ErrInvalidToken, messages.TokenDecodeError, nil)
	}
	return claims.Subject, nil
}
