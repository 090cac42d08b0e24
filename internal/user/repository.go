// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type Repository interface {
	// InsertIfAbsent reports false when a user with the email already exists.
	InsertIfAbsent(ctx context.Context, user *User) (bool, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	SetRole(ctx context.Context, id, role string) (core.UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) InsertIfAbsent(ctx context.Context, user *User) (bool, error) {
	query := `
		INSERT INTO users (id, email, name, photo_url, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PhotoURL,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert user: %w", err)
	}

	return true, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, name, photo_url, role, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT id, email, name, photo_url, role, created_at, updated_at
		FROM users
		WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, email, name, photo_url, role, created_at, updated_at
		FROM users
		ORDER BY created_at DESC`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// SetRole reports matched/modified separately so that promoting an
// existing admin is a match without a modification.
func (r *repository) SetRole(
	ctx context.Context,
	id, role string,
) (core.UpdateResult, error) {
	query := `
		WITH target AS (
			SELECT id, role FROM users WHERE id = $1
		), updated AS (
			UPDATE users u
			SET role = $2, updated_at = NOW()
			FROM target t
			WHERE u.id = t.id AND t.role <> $2
			RETURNING u.id
		)
		SELECT
			(SELECT COUNT(*) FROM target)  AS matched,
			(SELECT COUNT(*) FROM updated) AS modified`

	var res core.UpdateResult
	if err := r.db.GetContext(ctx, &res, query, id, role); err != nil {
		return core.UpdateResult{}, fmt.Errorf("set user role: %w", err)
	}

	return res, nil
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}

	return rows, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
