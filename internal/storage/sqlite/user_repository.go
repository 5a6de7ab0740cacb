package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u domain.User) error {
	const stmt = `
INSERT INTO users (id, email, hashed_password, is_verified, created_at)
VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.exec(ctx, stmt, u.ID, u.Email, u.HashedPassword, u.IsVerified, formatTime(u.CreatedAt)); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT id, email, hashed_password, is_verified, created_at FROM users WHERE email = ?`
	return r.getOne(ctx, query, "get user by email", email)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT id, email, hashed_password, is_verified, created_at FROM users WHERE id = ?`
	return r.getOne(ctx, query, "get user", id)
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	res, err := r.db.exec(ctx, `UPDATE users SET is_verified = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return requireRow(res, domain.ErrUserNotFound)
}

func (r *UserRepository) getOne(ctx context.Context, query, op, arg string) (domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	err := r.db.queryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsVerified, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
