package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

type UserRepository struct {
	q querier
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{q: querier{pool: pool}}
}

func (r *UserRepository) CreateUser(ctx context.Context, u domain.User) error {
	const stmt = `
INSERT INTO users (id, email, hashed_password, is_verified, created_at)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.q.exec(ctx, stmt, u.ID, u.Email, u.HashedPassword, u.IsVerified, u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT id, email, hashed_password, is_verified, created_at FROM users WHERE email = $1`
	return r.getOne(ctx, query, "get user by email", email)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT id, email, hashed_password, is_verified, created_at FROM users WHERE id = $1`
	return r.getOne(ctx, query, "get user", id)
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	tag, err := r.q.exec(ctx, `UPDATE users SET is_verified = TRUE WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("mark verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query, op string, arg string) (domain.User, error) {
	var u domain.User
	err := r.q.queryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsVerified, &u.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
