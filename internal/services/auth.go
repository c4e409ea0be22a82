package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/finbook/finbook-api/internal/errs"
	"github.com/finbook/finbook-api/internal/models"
	"github.com/finbook/finbook-api/pkg/logger"
)

type credentialStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type tokenIssuer interface {
	Issue(payload models.TokenPayload) (string, time.Time, error)
}

type authService struct {
	Store  credentialStore
	Tokens tokenIssuer
}

func NewAuthService(store credentialStore, tokens tokenIssuer) *authService {
	return &authService{
		Store:  store,
		Tokens: tokens,
	}
}

// Login checks the credentials and issues a signed token. An unknown
// email and a wrong password fail identically so callers cannot probe
// which emails are registered.
func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return "", time.Time{}, errs.NewValidationError("email and password are required")
	}

	user, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up user", "error", err)
		return "", time.Time{}, errs.NewDatabaseError("GetUserByEmail", err)
	}
	if user == nil {
		return "", time.Time{}, errs.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, errs.NewUnauthorizedError("Invalid credentials")
	}

	token, expires, err := s.Tokens.Issue(models.TokenPayload{ID: user.ID, Email: user.Email})
	if err != nil {
		log.Error("failed to issue token", "error", err)
		return "", time.Time{}, err
	}

	log.Info("user logged in", "user_id", user.ID)
	return token, expires, nil
}
