package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/01moynul/storefront-golang/internal/models"
)

type userRepository struct {
	q dbtx
}

const userColumns = "id, name, email, password_hash, is_admin, created_at"

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func (r *userRepository) GetUser(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return models.User{}, fmt.Errorf("scan user[%d]: %w", id, mapError(err))
	}
	return u, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err != nil {
		return models.User{}, fmt.Errorf("scan user by email: %w", mapError(err))
	}
	return u, nil
}

func (r *userRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	err := r.q.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", mapError(err))
	}
	return u, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
