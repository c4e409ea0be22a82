package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finbook/finbook-api/internal/errs"
	"github.com/finbook/finbook-api/internal/models"
)

// Claims is the signed token payload.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies identity tokens with a shared secret.
// It holds no durable state.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime, so callers can align
// cookie expiry with token expiry.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given identity and returns it with its expiry.
func (s *Service) Issue(payload models.TokenPayload) (string, time.Time, error) {
	expires := time.Now().Add(s.ttl)
	claims := &Claims{
		ID:    payload.ID,
		Email: payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify parses and validates a token string. Signature mismatch, a
// malformed payload, and expiry all fail the same way; callers only
// learn that the token is not acceptable.
func (s *Service) Verify(tokenStr string) (*models.TokenPayload, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errs.NewUnauthorizedError("Invalid token")
	}
	if !parsed.Valid {
		return nil, errs.NewUnauthorizedError("Invalid token")
	}

	return &models.TokenPayload{ID: claims.ID, Email: claims.Email}, nil
}
