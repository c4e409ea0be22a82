package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finbook/finbook-api/internal/errs"
	"github.com/finbook/finbook-api/internal/models"
	"github.com/finbook/finbook-api/pkg/logger"
)

type userStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type userService struct {
	Store userStore
}

func NewUserService(store userStore) *userService {
	return &userService{
		Store: store,
	}
}

// Register creates an identity. The email must not already be taken; the
// users table is keyed by email, so an unconditional write would silently
// overwrite the existing record.
func (s *userService) Register(ctx context.Context, email, password string) (*models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return nil, errs.NewValidationError("email and password are required")
	}

	existing, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		log.Error("failed to check for existing user", "error", err)
		return nil, errs.NewDatabaseError("GetUserByEmail", err)
	}
	if existing != nil {
		return nil, errs.NewAlreadyExistsError("a user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return nil, errs.NewDatabaseError("CreateUser", err)
	}

	log.Info("user created successfully", "user_id", user.ID)
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "error", err)
		return nil, errs.NewDatabaseError("ListUsers", err)
	}
	return users, nil
}
