// AngelaMos | 2026
// repository.go

package class

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, class *Class) error
	GetByID(ctx context.Context, id string) (*Class, error)
	List(ctx context.Context, filter ListFilter) ([]Class, error)
	Update(ctx context.Context, class *Class) (core.UpdateResult, error)
	SetStatus(ctx context.Context, id, status, feedback string) (core.UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const classColumns = `id, name, image, description, instructor_name, instructor_email,
	available_seats, enrolled, price, status, feedback, created_at, updated_at`

func (r *repository) Create(ctx context.Context, class *Class) error {
	query := `
		INSERT INTO classes (id, name, image, description, instructor_name,
		                     instructor_email, available_seats, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		class.ID,
		class.Name,
		class.Image,
		class.Description,
		class.InstructorName,
		class.InstructorEmail,
		class.AvailableSeats,
		class.Price,
		class.Status,
	).Scan(&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create class: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create class: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	var class Class
	err := r.db.GetContext(ctx, &class, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get class: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}

	return &class, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Class, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.InstructorEmail != "" {
		conditions = append(conditions, fmt.Sprintf("instructor_email = $%d", argIdx))
		args = append(args, filter.InstructorEmail)
	}

	query := `SELECT ` + classColumns + ` FROM classes`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	classes := []Class{}
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	return classes, nil
}

func (r *repository) Update(
	ctx context.Context,
	class *Class,
) (core.UpdateResult, error) {
	query := `
		UPDATE classes
		SET name = $2, image = $3, description = $4, instructor_name = $5,
		    available_seats = $6, price = $7, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		class.ID,
		class.Name,
		class.Image,
		class.Description,
		class.InstructorName,
		class.AvailableSeats,
		class.Price,
	)
	if err != nil {
		return core.UpdateResult{}, fmt.Errorf("update class: %w", err)
	}

	return updateResult(result, "update class")
}

func (r *repository) SetStatus(
	ctx context.Context,
	id, status, feedback string,
) (core.UpdateResult, error) {
	query := `
		UPDATE classes
		SET status = $2, feedback = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, feedback)
	if err != nil {
		return core.UpdateResult{}, fmt.Errorf("set class status: %w", err)
	}

	return updateResult(result, "set class status")
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete class: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete class: %w", err)
	}

	return rows, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM classes`); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return n, nil
}

// updateResult treats every matched row as modified; a full-row UPDATE
// always rewrites updated_at.
func updateResult(result sql.Result, op string) (core.UpdateResult, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return core.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return core.UpdateResult{MatchedCount: rows, ModifiedCount: rows}, nil
}
