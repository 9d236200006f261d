// File: internal/auth/service.go
package auth

import (
	"context"

	"carmarket_backend/internal/common"
	"carmarket_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles registration, login, and session introspection.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*user.UserResponse, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	userService  user.Service
	tokenService TokenService
	logger       *zap.Logger
}

// NewService creates a new auth service.
func NewService(userService user.Service, tokenService TokenService, logger *zap.Logger) Service {
	return &ServiceImplementation{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger.Named("AuthService"),
	}
}

func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	newUser, err := s.userService.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", zap.String("user_id", newUser.ID.String()), zap.String("email", newUser.Email))
	return s.issueToken(newUser)
}

func (s *ServiceImplementation) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	authedUser, err := s.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in", zap.String("user_id", authedUser.ID.String()))
	return s.issueToken(authedUser)
}

func (s *ServiceImplementation) Me(ctx context.Context, userID uuid.UUID) (*user.UserResponse, error) {
	u, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToUserResponse(u)
	return &resp, nil
}

func (s *ServiceImplementation) issueToken(u *user.User) (*TokenResponse, error) {
	token, expiresAt, err := s.tokenService.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err), zap.String("user_id", u.ID.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to issue access token.")
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   common.AuthorizationTypeBearer,
		ExpiresAt:   expiresAt,
		User:        user.ToUserResponse(u),
	}, nil
}
