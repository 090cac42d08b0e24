// AngelaMos | 2026
// service.go

package enroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(
	ctx context.Context,
	req CreateEnrollmentRequest,
) (core.InsertResult, error) {
	e := &Enrollment{
		ID:             uuid.New().String(),
		Email:          core.NormalizeEmail(req.Email),
		ClassID:        req.ClassID,
		Name:           req.Name,
		Image:          req.Image,
		InstructorName: req.InstructorName,
		Price:          req.Price,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return core.InsertResult{}, err
	}

	return core.InsertResult{InsertedID: e.ID}, nil
}

// ListOwned returns the enrollments of email, which must be the caller's
// verified email.
func (s *Service) ListOwned(
	ctx context.Context,
	email, verified string,
) ([]Enrollment, error) {
	if email == "" {
		return []Enrollment{}, nil
	}

	if !strings.EqualFold(email, verified) {
		return nil, fmt.Errorf("list enrollments: %w", core.ErrForbidden)
	}

	return s.repo.ListByEmail(ctx, core.NormalizeEmail(email))
}

// RemoveOwned deletes one enrollment belonging to verified. A missing id
// is a no-op.
func (s *Service) RemoveOwned(
	ctx context.Context,
	id, verified string,
) (core.DeleteResult, error) {
	e, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return core.DeleteResult{}, nil
	}
	if err != nil {
		return core.DeleteResult{}, err
	}

	if !strings.EqualFold(e.Email, verified) {
		slog.WarnContext(ctx, "enrollment delete denied",
			"enrollment_id", id,
			"email", verified,
		)
		return core.DeleteResult{}, fmt.Errorf("remove enrollment: %w", core.ErrForbidden)
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return core.DeleteResult{}, err
	}
	return core.DeleteResult{DeletedCount: n}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
