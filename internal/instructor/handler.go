// AngelaMos | 2026
// handler.go

package instructor

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

const (
	defaultPopularLimit = 6
	maxPopularLimit     = 50
)

// Handler serves the read-only instructor directory.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/instructors", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/popular", h.Popular)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.repo.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, instructors)
}

func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := defaultPopularLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			core.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = min(n, maxPopularLimit)
	}

	instructors, err := h.repo.Popular(r.Context(), limit)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, instructors)
}
