package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/jwt"
)

// Service implements auth.AuthService.
type Service struct {
	userRepo   auth.UserRepository
	jwtService jwt.Service
}

// NewService creates an auth service.
func NewService(userRepo auth.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies the credentials and issues an access token. An unknown
// email and a wrong password produce the same error so the login form leaks
// nothing about which accounts exist.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Name:        user.Name,
		Email:       user.Email,
	}, nil
}
