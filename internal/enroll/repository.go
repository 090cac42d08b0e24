// AngelaMos | 2026
// repository.go

package enroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, e *Enrollment) error
	GetByID(ctx context.Context, id string) (*Enrollment, error)
	ListByEmail(ctx context.Context, email string) ([]Enrollment, error)
	Delete(ctx context.Context, id string) (int64, error)
	// DeleteMany removes the enrollments owned by email whose id is in ids.
	// Ids that no longer exist or belong to someone else are skipped.
	DeleteMany(ctx context.Context, email string, ids []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Enrollment) error {
	query := `
		INSERT INTO enrollments (id, email, class_id, name, image, instructor_name, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		e.ID,
		e.Email,
		e.ClassID,
		e.Name,
		e.Image,
		e.InstructorName,
		e.Price,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Enrollment, error) {
	query := `
		SELECT id, email, class_id, name, image, instructor_name, price, created_at
		FROM enrollments
		WHERE id = $1`

	var e Enrollment
	err := r.db.GetContext(ctx, &e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get enrollment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}

	return &e, nil
}

func (r *repository) ListByEmail(
	ctx context.Context,
	email string,
) ([]Enrollment, error) {
	query := `
		SELECT id, email, class_id, name, image, instructor_name, price, created_at
		FROM enrollments
		WHERE email = $1
		ORDER BY created_at DESC`

	enrollments := []Enrollment{}
	if err := r.db.SelectContext(ctx, &enrollments, query, email); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	return enrollments, nil
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete enrollment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete enrollment: %w", err)
	}

	return rows, nil
}

func (r *repository) DeleteMany(
	ctx context.Context,
	email string,
	ids []string,
) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM enrollments WHERE id = ANY($1) AND email = $2`,
		pq.Array(ids),
		core.NormalizeEmail(email),
	)
	if err != nil {
		return 0, fmt.Errorf("delete enrollments: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete enrollments: %w", err)
	}

	return rows, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM enrollments`); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return n, nil
}
