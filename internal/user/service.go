// File: internal/user/service.go
package user

import (
	"context"

	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, email, name, password string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)
	AdminListUsers(ctx context.Context) ([]User, error)
}

// ServiceImplementation implements the user Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{repo: repo, logger: logger}
}

// Register creates a new user account with the "user" role.
func (s *ServiceImplementation) Register(ctx context.Context, email, name, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not create account.")
	}

	newUser := &User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         common.RoleUser,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("userID", newUser.ID.String()), zap.String("email", email))
	return newUser, nil
}

// Authenticate checks the email/password pair against the stored hash.
func (s *ServiceImplementation) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and bad password.
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Password mismatch during login", zap.String("email", email))
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}
	return u, nil
}

func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile performs a shallow merge of the provided fields.
func (s *ServiceImplementation) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.AvatarURL != nil {
		existing.AvatarURL = req.AvatarURL
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Location != nil {
		existing.Location = req.Location
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("Failed to update user profile", zap.Error(err), zap.String("userID", id.String()))
		return nil, err
	}
	return existing, nil
}

func (s *ServiceImplementation) AdminListUsers(ctx context.Context) ([]User, error) {
	return s.repo.FindAll(ctx)
}
