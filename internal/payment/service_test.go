// AngelaMos | 2026
// service_test.go

package payment

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type memoryPayments struct {
	mu   sync.Mutex
	rows []Payment
	err  error
}

func (m *memoryPayments) Create(_ context.Context, p *Payment) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, *p)
	return nil
}

func (m *memoryPayments) ListByEmail(_ context.Context, email string) ([]Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Payment{}
	for _, p := range m.rows {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryPayments) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rows)), nil
}

func (m *memoryPayments) Revenue(context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, p := range m.rows {
		total += p.Price
	}
	return total, nil
}

type memoryEnrollments struct {
	mu     sync.Mutex
	owners map[string]string
	err    error
}

// newMemoryEnrollments seeds ids owned by a@example.com.
func newMemoryEnrollments(ids ...string) *memoryEnrollments {
	m := &memoryEnrollments{owners: map[string]string{}}
	for _, id := range ids {
		m.owners[id] = "a@example.com"
	}
	return m
}

func (m *memoryEnrollments) add(email, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[id] = email
}

func (m *memoryEnrollments) DeleteMany(_ context.Context, email string, ids []string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if owner, ok := m.owners[id]; ok && owner == email {
			delete(m.owners, id)
			n++
		}
	}
	return n, nil
}

func (m *memoryEnrollments) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.owners[id]
	return ok
}

type fakeGateway struct {
	amount   int64
	currency string
	err      error
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_secret_test", nil
}

type fakeRecorder struct {
	intents   []bool
	committed []int64
	failures  int
}

func (f *fakeRecorder) RecordPaymentIntent(ok bool)          { f.intents = append(f.intents, ok) }
func (f *fakeRecorder) RecordPaymentCommitted(cleared int64) { f.committed = append(f.committed, cleared) }
func (f *fakeRecorder) RecordClearFailure()                  { f.failures++ }

type fakePublisher struct {
	events []CommittedEvent
	err    error
}

func (f *fakePublisher) PublishCommitted(_ context.Context, e CommittedEvent) error {
	f.events = append(f.events, e)
	return f.err
}

func TestCreateIntentAmount(t *testing.T) {
	gw := &fakeGateway{}
	rec := &fakeRecorder{}
	svc := NewService(ServiceConfig{Gateway: gw, Recorder: rec, Currency: "usd"})

	secret, err := svc.CreateIntent(context.Background(), 20)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if secret != "pi_secret_test" {
		t.Errorf("secret = %q", secret)
	}
	if gw.amount != 2000 {
		t.Errorf("amount = %d, want 2000", gw.amount)
	}
	if gw.currency != "usd" {
		t.Errorf("currency = %q", gw.currency)
	}
	if len(rec.intents) != 1 || !rec.intents[0] {
		t.Errorf("intents recorded = %v", rec.intents)
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{20, 2000},
		{19.99, 1999},
		{0.1 + 0.2, 30},
		{1.005, 100},
	}
	for _, tc := range tests {
		if got := MinorUnits(tc.price); got != tc.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

func TestCreateIntentRejectsNonPositivePrice(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(ServiceConfig{Gateway: gw, Currency: "usd"})

	for _, price := range []float64{0, -5, 0.004, math.NaN(), math.Inf(1)} {
		_, err := svc.CreateIntent(context.Background(), price)
		if !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("price %v: err = %v, want ErrInvalidInput", price, err)
		}
	}
	if gw.amount != 0 {
		t.Error("gateway called for an invalid price")
	}
}

func TestCreateIntentGatewayFailure(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewService(ServiceConfig{
		Gateway:  &fakeGateway{err: core.ErrGatewayFailed},
		Recorder: rec,
		Currency: "usd",
	})

	if _, err := svc.CreateIntent(context.Background(), 10); !errors.Is(err, core.ErrGatewayFailed) {
		t.Fatalf("err = %v", err)
	}
	if len(rec.intents) != 1 || rec.intents[0] {
		t.Errorf("intents recorded = %v", rec.intents)
	}
}

func commitRequest(items ...string) CommitRequest {
	return CommitRequest{
		Email:       "a@example.com",
		Price:       45,
		Quantity:    len(items),
		CourseItems: items,
	}
}

func TestCommitClearsEnrollments(t *testing.T) {
	payments := &memoryPayments{}
	enrollments := newMemoryEnrollments("e1", "e2", "e3")
	rec := &fakeRecorder{}
	pub := &fakePublisher{}
	svc := NewService(ServiceConfig{
		Repository:  payments,
		Enrollments: enrollments,
		Recorder:    rec,
		Publisher:   pub,
	})

	res, err := svc.Commit(context.Background(), "a@example.com", commitRequest("e1", "e2"))
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if res.Result.InsertedID == "" {
		t.Error("no inserted id")
	}
	if res.DeleteResult.DeletedCount != 2 {
		t.Errorf("deleted = %d, want 2", res.DeleteResult.DeletedCount)
	}

	if len(payments.rows) != 1 {
		t.Fatalf("payments = %d, want 1", len(payments.rows))
	}
	if !slices.Equal([]string(payments.rows[0].CourseItems), []string{"e1", "e2"}) {
		t.Errorf("course items = %v", payments.rows[0].CourseItems)
	}
	if enrollments.has("e1") || enrollments.has("e2") {
		t.Error("purchased enrollments still pending")
	}
	if !enrollments.has("e3") {
		t.Error("unrelated enrollment removed")
	}

	if len(rec.committed) != 1 || rec.committed[0] != 2 {
		t.Errorf("committed recorded = %v", rec.committed)
	}
	if len(pub.events) != 1 || pub.events[0].PaymentID != res.Result.InsertedID {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestCommitKeepsPaymentWhenClearFails(t *testing.T) {
	payments := &memoryPayments{}
	enrollments := newMemoryEnrollments("e1")
	enrollments.err = errors.New("store unavailable")
	rec := &fakeRecorder{}
	pub := &fakePublisher{}
	svc := NewService(ServiceConfig{
		Repository:  payments,
		Enrollments: enrollments,
		Recorder:    rec,
		Publisher:   pub,
	})

	res, err := svc.Commit(context.Background(), "a@example.com", commitRequest("e1"))
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if res.DeleteResult.DeletedCount != 0 {
		t.Errorf("deleted = %d, want 0", res.DeleteResult.DeletedCount)
	}
	if len(payments.rows) != 1 {
		t.Fatalf("payment rolled back: %d rows", len(payments.rows))
	}
	if !enrollments.has("e1") {
		t.Error("enrollment removed despite failure")
	}
	if rec.failures != 1 {
		t.Errorf("clear failures = %d, want 1", rec.failures)
	}
	if len(pub.events) != 0 {
		t.Error("event published for an uncleared payment")
	}
}

func TestDuplicateCommitIsNoOpDelete(t *testing.T) {
	payments := &memoryPayments{}
	enrollments := newMemoryEnrollments("e1", "e2")
	svc := NewService(ServiceConfig{Repository: payments, Enrollments: enrollments})

	first, err := svc.Commit(context.Background(), "a@example.com", commitRequest("e1", "e2"))
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}
	second, err := svc.Commit(context.Background(), "a@example.com", commitRequest("e1", "e2"))
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}

	if first.DeleteResult.DeletedCount != 2 || second.DeleteResult.DeletedCount != 0 {
		t.Errorf("deleted = %d then %d, want 2 then 0",
			first.DeleteResult.DeletedCount, second.DeleteResult.DeletedCount)
	}
	if len(payments.rows) != 2 {
		t.Errorf("payments = %d, want 2", len(payments.rows))
	}
	if first.Result.InsertedID == second.Result.InsertedID {
		t.Error("payments share an id")
	}
}

func TestCommitInsertFailure(t *testing.T) {
	enrollments := newMemoryEnrollments("e1")
	svc := NewService(ServiceConfig{
		Repository:  &memoryPayments{err: errors.New("disk full")},
		Enrollments: enrollments,
	})

	if _, err := svc.Commit(context.Background(), "a@example.com", commitRequest("e1")); err == nil {
		t.Fatal("expected error")
	}
	if !enrollments.has("e1") {
		t.Error("enrollments cleared without a payment record")
	}
}

func TestCommitRequiresMatchingEmail(t *testing.T) {
	payments := &memoryPayments{}
	svc := NewService(ServiceConfig{
		Repository:  payments,
		Enrollments: newMemoryEnrollments("e1"),
	})

	_, err := svc.Commit(context.Background(), "b@example.com", commitRequest("e1"))
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if len(payments.rows) != 0 {
		t.Error("payment written for another user")
	}
}

func TestCommitLeavesOtherUsersEnrollments(t *testing.T) {
	payments := &memoryPayments{}
	enrollments := newMemoryEnrollments()
	enrollments.add("alice@example.com", "alice-1")
	enrollments.add("mallory@example.com", "mallory-1")
	svc := NewService(ServiceConfig{Repository: payments, Enrollments: enrollments})

	res, err := svc.Commit(context.Background(), "mallory@example.com", CommitRequest{
		Email:       "mallory@example.com",
		CourseItems: []string{"alice-1", "mallory-1"},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if res.DeleteResult.DeletedCount != 1 {
		t.Errorf("deleted = %d, want 1", res.DeleteResult.DeletedCount)
	}
	if !enrollments.has("alice-1") {
		t.Error("another user's enrollment was cleared")
	}
	if enrollments.has("mallory-1") {
		t.Error("own enrollment still pending")
	}
}

func TestPublishFailureDoesNotFailCommit(t *testing.T) {
	svc := NewService(ServiceConfig{
		Repository:  &memoryPayments{},
		Enrollments: newMemoryEnrollments("e1"),
		Publisher:   &fakePublisher{err: errors.New("broker down")},
	})

	res, err := svc.Commit(context.Background(), "a@example.com", commitRequest("e1"))
	if err != nil || res.DeleteResult.DeletedCount != 1 {
		t.Fatalf("res = %+v, err = %v", res, err)
	}
}

func TestNilKafkaPublisher(t *testing.T) {
	var p *KafkaPublisher
	if err := p.PublishCommitted(context.Background(), CommittedEvent{}); err != nil {
		t.Errorf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if NewKafkaPublisher(nil, "payment.committed") != nil {
		t.Error("publisher built without brokers")
	}
}
