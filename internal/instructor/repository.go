// AngelaMos | 2026
// repository.go

package instructor

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Instructor, error)
	Popular(ctx context.Context, limit int) ([]Instructor, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Instructor, error) {
	query := `
		SELECT id, name, email, image, students, created_at
		FROM instructors
		ORDER BY name`

	instructors := []Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, query); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}

	return instructors, nil
}

func (r *repository) Popular(ctx context.Context, limit int) ([]Instructor, error) {
	query := `
		SELECT id, name, email, image, students, created_at
		FROM instructors
		ORDER BY students DESC, name
		LIMIT $1`

	instructors := []Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, query, limit); err != nil {
		return nil, fmt.Errorf("list popular instructors: %w", err)
	}

	return instructors, nil
}
