// AngelaMos | 2026
// handler_test.go

package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/summercamp-api/internal/core"
	"github.com/carterperez-dev/summercamp-api/internal/middleware"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[string]*User
}

func newMemoryRepo(users ...User) *memoryRepo {
	m := &memoryRepo{users: map[string]*User{}}
	for i := range users {
		u := users[i]
		m.users[u.ID] = &u
	}
	return m
}

func (m *memoryRepo) InsertIfAbsent(_ context.Context, user *User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return false, nil
		}
	}
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return true, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) List(context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memoryRepo) SetRole(_ context.Context, id, role string) (core.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return core.UpdateResult{}, nil
	}
	if u.Role == role {
		return core.UpdateResult{MatchedCount: 1}, nil
	}
	u.Role = role
	return core.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return 0, nil
	}
	delete(m.users, id)
	return 1, nil
}

func (m *memoryRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

// asEmail stands in for the credential gate: it trusts an X-Test-Email header.
func asEmail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get("X-Test-Email")
		if email == "" {
			core.Unauthorized(w, "")
			return
		}
		ctx := middleware.WithClaims(r.Context(), &middleware.IdentityClaims{Email: email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func optionalEmail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if email := r.Header.Get("X-Test-Email"); email != "" {
			r = r.WithContext(middleware.WithClaims(
				r.Context(),
				&middleware.IdentityClaims{Email: email},
			))
		}
		next.ServeHTTP(w, r)
	})
}

func newTestRouter(repo Repository) http.Handler {
	svc := NewService(repo)
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, asEmail, optionalEmail, middleware.RequireAdmin(svc))
	return r
}

func do(t *testing.T, h http.Handler, method, path, email string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if email != "" {
		req.Header.Set("X-Test-Email", email)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSignupIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	h := newTestRouter(repo)

	first := do(t, h, http.MethodPost, "/users", "", map[string]string{
		"email": "Student@Example.com",
		"name":  "Student",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("first signup status = %d, body = %s", first.Code, first.Body.String())
	}
	var ins core.InsertResult
	if err := json.Unmarshal(first.Body.Bytes(), &ins); err != nil || ins.InsertedID == "" {
		t.Fatalf("insert result = %+v, err = %v", ins, err)
	}

	second := do(t, h, http.MethodPost, "/users", "", map[string]string{
		"email": "student@example.com",
	})
	if second.Code != http.StatusOK {
		t.Fatalf("second signup status = %d", second.Code)
	}
	var msg core.MessageResponse
	if err := json.Unmarshal(second.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Message != "user already exists" {
		t.Errorf("message = %q", msg.Message)
	}

	if n, _ := repo.Count(context.Background()); n != 1 {
		t.Fatalf("user count = %d, want 1", n)
	}
}

func TestSignupValidation(t *testing.T) {
	h := newTestRouter(newMemoryRepo())

	rec := do(t, h, http.MethodPost, "/users", "", map[string]string{"name": "no email"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckAdmin(t *testing.T) {
	h := newTestRouter(newMemoryRepo(
		User{ID: "1", Email: "admin@example.com", Role: RoleAdmin},
		User{ID: "2", Email: "student@example.com"},
	))

	cases := []struct {
		name   string
		path   string
		caller string
		want   bool
	}{
		{"admin anonymous", "/users/admin/admin@example.com", "", true},
		{"admin self", "/users/admin/admin@example.com", "admin@example.com", true},
		{"admin asked by someone else", "/users/admin/admin@example.com", "student@example.com", false},
		{"student", "/users/admin/student@example.com", "", false},
		{"unknown", "/users/admin/ghost@example.com", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tc.path, tc.caller, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var resp AdminCheckResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Admin != tc.want {
				t.Errorf("admin = %v, want %v", resp.Admin, tc.want)
			}
		})
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	repo := newMemoryRepo(
		User{ID: "1", Email: "admin@example.com", Role: RoleAdmin},
		User{ID: "2", Email: "student@example.com"},
	)
	h := newTestRouter(repo)

	if rec := do(t, h, http.MethodGet, "/users", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list status = %d, want 401", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/users", "student@example.com", nil); rec.Code != http.StatusForbidden {
		t.Errorf("student list status = %d, want 403", rec.Code)
	}
	if rec := do(t, h, http.MethodPatch, "/users/admin/2", "student@example.com", nil); rec.Code != http.StatusForbidden {
		t.Errorf("student self-promotion status = %d, want 403", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/users/1", "student@example.com", nil); rec.Code != http.StatusForbidden {
		t.Errorf("student delete status = %d, want 403", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/users", "admin@example.com", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list status = %d", rec.Code)
	}
	var users []UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil || len(users) != 2 {
		t.Fatalf("users = %+v, err = %v", users, err)
	}
}

func TestPromoteAndDelete(t *testing.T) {
	repo := newMemoryRepo(
		User{ID: "1", Email: "admin@example.com", Role: RoleAdmin},
		User{ID: "2", Email: "student@example.com"},
	)
	h := newTestRouter(repo)

	rec := do(t, h, http.MethodPatch, "/users/admin/2", "admin@example.com", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("promote status = %d", rec.Code)
	}
	var upd core.UpdateResult
	if err := json.Unmarshal(rec.Body.Bytes(), &upd); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if upd.MatchedCount != 1 || upd.ModifiedCount != 1 {
		t.Errorf("update result = %+v", upd)
	}

	u, _ := repo.GetByID(context.Background(), "2")
	if !u.IsAdmin() {
		t.Fatal("user 2 not promoted")
	}

	rec = do(t, h, http.MethodDelete, "/users/2", "admin@example.com", nil)
	var del core.DeleteResult
	if err := json.Unmarshal(rec.Body.Bytes(), &del); err != nil || del.DeletedCount != 1 {
		t.Fatalf("delete result = %+v, err = %v", del, err)
	}
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemoryRepo(User{ID: "1", Email: "a@example.com"}))

	if _, err := svc.SetRole(context.Background(), "1", "superuser"); err == nil {
		t.Fatal("expected invalid role error")
	}
}

func TestMakeInstructor(t *testing.T) {
	repo := newMemoryRepo(
		User{ID: "1", Email: "admin@example.com", Role: RoleAdmin},
		User{ID: "2", Email: "coach@example.com"},
	)
	h := newTestRouter(repo)

	check := func() bool {
		t.Helper()
		rec := do(t, h, http.MethodGet, "/users/instructor/coach@example.com", "", nil)
		var resp InstructorCheckResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp.Instructor
	}

	if check() {
		t.Fatal("instructor before promotion")
	}

	if rec := do(t, h, http.MethodPatch, "/users/instructor/2", "coach@example.com", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("self promotion status = %d, want 403", rec.Code)
	}

	rec := do(t, h, http.MethodPatch, "/users/instructor/2", "admin@example.com", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("promote status = %d", rec.Code)
	}

	if !check() {
		t.Fatal("instructor role not set")
	}
}
