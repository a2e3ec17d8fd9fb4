package auth

import (
	"context"
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/pkg/validator"
)

// User is an admin-panel account. Any authenticated user may act; there are
// no roles beyond that.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository - lookup for login.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

// AuthService - login for the admin panel.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
