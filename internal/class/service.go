// AngelaMos | 2026
// service.go

package class

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/carterperez-dev/summercamp-api/internal/core"
	"github.com/carterperez-dev/summercamp-api/internal/middleware"
)

type Service struct {
	repo   Repository
	policy *bluemonday.Policy
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		policy: bluemonday.StrictPolicy(),
	}
}

// clean strips all markup from client supplied free text.
func (s *Service) clean(text string) string {
	return strings.TrimSpace(s.policy.Sanitize(text))
}

// Create stores a new class as pending review.
func (s *Service) Create(
	ctx context.Context,
	req CreateClassRequest,
) (core.InsertResult, error) {
	class := &Class{
		ID:              uuid.New().String(),
		Name:            s.clean(req.Name),
		Image:           req.Image,
		Description:     s.clean(req.Description),
		InstructorName:  s.clean(req.InstructorName),
		InstructorEmail: core.NormalizeEmail(req.InstructorEmail),
		AvailableSeats:  req.AvailableSeats,
		Price:           req.Price,
		Status:          StatusPending,
	}

	if err := s.repo.Create(ctx, class); err != nil {
		return core.InsertResult{}, err
	}

	slog.InfoContext(ctx, "class created",
		"class_id", class.ID,
		"instructor", class.InstructorEmail,
	)
	return core.InsertResult{InsertedID: class.ID}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Class, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Class, error) {
	if filter.InstructorEmail != "" {
		filter.InstructorEmail = core.NormalizeEmail(filter.InstructorEmail)
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateClassRequest,
) (core.UpdateResult, error) {
	return s.repo.Update(ctx, &Class{
		ID:             id,
		Name:           s.clean(req.Name),
		Image:          req.Image,
		Description:    s.clean(req.Description),
		InstructorName: s.clean(req.InstructorName),
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
	})
}

func (s *Service) SetStatus(
	ctx context.Context,
	id string,
	req UpdateStatusRequest,
) (core.UpdateResult, error) {
	res, err := s.repo.SetStatus(ctx, id, req.Status, s.clean(req.Feedback))
	if err != nil {
		return core.UpdateResult{}, err
	}

	slog.InfoContext(ctx, "class reviewed",
		"class_id", id,
		"status", req.Status,
		"by", middleware.GetEmail(ctx),
	)
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id string) (core.DeleteResult, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return core.DeleteResult{}, err
	}
	return core.DeleteResult{DeletedCount: n}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
