// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/summercamp-api/internal/core"
	"github.com/carterperez-dev/summercamp-api/internal/middleware"
)

type SignupResult struct {
	Existing   bool
	InsertedID string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Signup is idempotent on email: a repeat signup reports Existing and
// writes nothing.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*SignupResult, error) {
	user := &User{
		ID:       uuid.New().String(),
		Email:    core.NormalizeEmail(req.Email),
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     RoleNone,
	}

	inserted, err := s.repo.InsertIfAbsent(ctx, user)
	if err != nil {
		return nil, err
	}

	if !inserted {
		return &SignupResult{Existing: true}, nil
	}

	slog.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return &SignupResult{InsertedID: user.ID}, nil
}

// RoleByEmail satisfies middleware.RoleLookup.
func (s *Service) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, core.NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *Service) HasRole(ctx context.Context, email, role string) (bool, error) {
	current, err := s.RoleByEmail(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return current == role, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) SetRole(
	ctx context.Context,
	id, role string,
) (core.UpdateResult, error) {
	if role != RoleAdmin && role != RoleInstructor {
		return core.UpdateResult{}, fmt.Errorf(
			"set role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	res, err := s.repo.SetRole(ctx, id, role)
	if err != nil {
		return core.UpdateResult{}, err
	}

	slog.InfoContext(ctx, "user role changed",
		"user_id", id,
		"role", role,
		"by", middleware.GetEmail(ctx),
		"modified", res.ModifiedCount,
	)
	return res, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) (core.DeleteResult, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return core.DeleteResult{}, err
	}
	return core.DeleteResult{DeletedCount: n}, nil
}

func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

var _ middleware.RoleLookup = (*Service)(nil)
