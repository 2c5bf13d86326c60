package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketway/storefront/internal/domain"
	"github.com/marketway/storefront/internal/query"
)

type userStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.UserRole) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	users userStore
}

func NewService(users userStore) *Service {
	return &Service{users: users}
}

// Register creates a self-service account with the default USER role.
// Passwords are hashed at the store boundary; the plaintext never leaves
// this function.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.create(ctx, name, email, password, domain.RoleUser)
}

// CreateUser is the admin path: any role can be assigned.
func (s *Service) CreateUser(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, error) {
	return s.create(ctx, name, email, password, role)
}

func (s *Service) create(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns an opaque session token. An
// unknown email and a wrong password produce the same error so callers
// cannot probe which addresses are registered.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	return user, uuid.New().String(), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, criteria query.Criteria) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return query.Users(users, criteria), nil
}

func (s *Service) UpdateRole(ctx context.Context, id string, role domain.UserRole) (*domain.User, error) {
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
