// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByEmail(ctx context.Context, email string) ([]Payment, error)
	Count(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (float64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (id, email, transaction_id, price, quantity,
		                      course_items, class_items, item_names, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Email,
		p.TransactionID,
		p.Price,
		p.Quantity,
		p.CourseItems,
		p.ClassItems,
		p.ItemNames,
		p.Status,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *repository) ListByEmail(ctx context.Context, email string) ([]Payment, error) {
	query := `
		SELECT id, email, transaction_id, price, quantity,
		       course_items, class_items, item_names, status, created_at
		FROM payments
		WHERE email = $1
		ORDER BY created_at DESC`

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM payments`); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (r *repository) Revenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(price), 0) FROM payments`)
	if err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}
