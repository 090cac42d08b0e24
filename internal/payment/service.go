// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

// EnrollmentClearer is the bulk delete on the enrollment store. Only
// enrollments owned by email are removed.
type EnrollmentClearer interface {
	DeleteMany(ctx context.Context, email string, ids []string) (int64, error)
}

type Recorder interface {
	RecordPaymentIntent(ok bool)
	RecordPaymentCommitted(cleared int64)
	RecordClearFailure()
}

type Service struct {
	repo        Repository
	enrollments EnrollmentClearer
	gateway     Gateway
	publisher   Publisher
	recorder    Recorder
	currency    string
	now         func() time.Time
}

type ServiceConfig struct {
	Repository  Repository
	Enrollments EnrollmentClearer
	Gateway     Gateway
	// Publisher and Recorder are optional.
	Publisher Publisher
	Recorder  Recorder
	Currency  string
}

func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:        cfg.Repository,
		enrollments: cfg.Enrollments,
		gateway:     cfg.Gateway,
		publisher:   cfg.Publisher,
		recorder:    cfg.Recorder,
		currency:    cfg.Currency,
		now:         time.Now,
	}
}

// MinorUnits converts a decimal price into the gateway's integer amount.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent asks the gateway for a card payment intent. Nothing is
// stored until the client commits the payment.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "", fmt.Errorf("create intent: price must be finite: %w", core.ErrInvalidInput)
	}

	amount := MinorUnits(price)
	if amount <= 0 {
		return "", fmt.Errorf("create intent: amount must be positive: %w", core.ErrInvalidInput)
	}

	ctx, span := core.StartSpan(ctx, "payment.create_intent",
		attribute.Int64("payment.amount", amount),
		attribute.String("payment.currency", s.currency),
	)

	secret, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	core.EndSpan(span, err)

	if s.recorder != nil {
		s.recorder.RecordPaymentIntent(err == nil)
	}
	if err != nil {
		return "", err
	}

	return secret, nil
}

// Commit records the payment and then clears the purchased enrollments.
// The two writes are independent: when clearing fails the payment stays
// recorded and the response reports zero deleted.
func (s *Service) Commit(
	ctx context.Context,
	verified string,
	req CommitRequest,
) (*CommitResponse, error) {
	if !strings.EqualFold(req.Email, verified) {
		return nil, fmt.Errorf("commit payment: %w", core.ErrForbidden)
	}

	ctx, span := core.StartSpan(ctx, "payment.commit",
		attribute.Int("payment.items", len(req.CourseItems)),
	)
	var spanErr error
	defer func() { core.EndSpan(span, spanErr) }()

	p := &Payment{
		ID:            uuid.New().String(),
		Email:         core.NormalizeEmail(req.Email),
		TransactionID: req.TransactionID,
		Price:         req.Price,
		Quantity:      req.Quantity,
		CourseItems:   nonNil(req.CourseItems),
		ClassItems:    nonNil(req.ClassItems),
		ItemNames:     nonNil(req.ItemNames),
		Status:        req.Status,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		spanErr = err
		return nil, err
	}

	resp := &CommitResponse{
		Result: core.InsertResult{InsertedID: p.ID},
	}

	cleared, err := s.enrollments.DeleteMany(ctx, p.Email, p.CourseItems)
	if err != nil {
		spanErr = err
		slog.ErrorContext(ctx, "payment recorded but enrollments not cleared",
			"payment_id", p.ID,
			"email", p.Email,
			"course_items", []string(p.CourseItems),
			"error", err,
		)
		if s.recorder != nil {
			s.recorder.RecordClearFailure()
		}
		return resp, nil
	}

	resp.DeleteResult.DeletedCount = cleared
	span.SetAttributes(attribute.Int64("payment.cleared", cleared))

	if s.recorder != nil {
		s.recorder.RecordPaymentCommitted(cleared)
	}

	slog.InfoContext(ctx, "payment committed",
		"payment_id", p.ID,
		"email", p.Email,
		"cleared", cleared,
	)

	s.publish(ctx, p, cleared)

	return resp, nil
}

func (s *Service) publish(ctx context.Context, p *Payment, cleared int64) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishCommitted(context.WithoutCancel(ctx), CommittedEvent{
		PaymentID:   p.ID,
		Email:       p.Email,
		Price:       p.Price,
		CourseItems: p.CourseItems,
		Cleared:     cleared,
		CommittedAt: s.now().UTC(),
	})
	if err != nil {
		slog.WarnContext(ctx, "payment event not published",
			"payment_id", p.ID,
			"error", err,
		)
	}
}

// History lists the payments of email, which must be the caller's
// verified email.
func (s *Service) History(
	ctx context.Context,
	email, verified string,
) ([]Payment, error) {
	if email == "" {
		return []Payment{}, nil
	}

	if !strings.EqualFold(email, verified) {
		return nil, fmt.Errorf("payment history: %w", core.ErrForbidden)
	}

	return s.repo.ListByEmail(ctx, core.NormalizeEmail(email))
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Revenue(ctx context.Context) (float64, error) {
	return s.repo.Revenue(ctx)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
