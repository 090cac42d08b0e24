// AngelaMos | 2026
// handler_test.go

package instructor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type fakeRepo struct {
	listFn    func(ctx context.Context) ([]Instructor, error)
	popularFn func(ctx context.Context, limit int) ([]Instructor, error)
}

func (f *fakeRepo) List(ctx context.Context) ([]Instructor, error) {
	return f.listFn(ctx)
}

func (f *fakeRepo) Popular(ctx context.Context, limit int) ([]Instructor, error) {
	return f.popularFn(ctx, limit)
}

func serve(repo Repository, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(repo).RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestList(t *testing.T) {
	repo := &fakeRepo{listFn: func(context.Context) ([]Instructor, error) {
		return []Instructor{{ID: "i1", Name: "Ada"}, {ID: "i2", Name: "Lin"}}, nil
	}}

	rec := serve(repo, "/instructors")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got []Instructor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || len(got) != 2 {
		t.Fatalf("instructors = %+v, err = %v", got, err)
	}
}

func TestListStoreFailure(t *testing.T) {
	repo := &fakeRepo{listFn: func(context.Context) ([]Instructor, error) {
		return nil, errors.New("connection reset")
	}}

	if rec := serve(repo, "/instructors"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestPopularLimit(t *testing.T) {
	var gotLimit int
	repo := &fakeRepo{popularFn: func(_ context.Context, limit int) ([]Instructor, error) {
		gotLimit = limit
		return []Instructor{}, nil
	}}

	tests := []struct {
		target    string
		wantCode  int
		wantLimit int
	}{
		{"/instructors/popular", http.StatusOK, defaultPopularLimit},
		{"/instructors/popular?limit=3", http.StatusOK, 3},
		{"/instructors/popular?limit=500", http.StatusOK, maxPopularLimit},
		{"/instructors/popular?limit=0", http.StatusBadRequest, 0},
		{"/instructors/popular?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tc := range tests {
		gotLimit = 0
		rec := serve(repo, tc.target)
		if rec.Code != tc.wantCode {
			t.Errorf("%s: status = %d, want %d", tc.target, rec.Code, tc.wantCode)
		}
		if gotLimit != tc.wantLimit {
			t.Errorf("%s: limit = %d, want %d", tc.target, gotLimit, tc.wantLimit)
		}
	}
}
