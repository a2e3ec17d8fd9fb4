package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a PostgreSQL user repository.
func NewUserRepository(db *database.DB) auth.UserRepository {
	return &userRepository{db: db}
}

// GetByEmail implements auth.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user auth.User
	err := q.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
