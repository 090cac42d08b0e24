// AngelaMos | 2026
// handler.go

package enroll

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/summercamp-api/internal/core"
	"github.com/carterperez-dev/summercamp-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	r.Route("/enrolled", func(r chi.Router) {
		r.Post("/", h.Add)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/", h.List)
			r.Delete("/{enrollmentID}", h.Remove)
		})
	})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req CreateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	res, err := h.service.Add(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, res)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.service.ListOwned(
		r.Context(),
		r.URL.Query().Get("email"),
		middleware.GetEmail(r.Context()),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, enrollments)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.RemoveOwned(
		r.Context(),
		chi.URLParam(r, "enrollmentID"),
		middleware.GetEmail(r.Context()),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, res)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrForbidden) {
		core.Forbidden(w, "")
		return
	}
	core.InternalServerError(w, err)
}
