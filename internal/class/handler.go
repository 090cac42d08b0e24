// AngelaMos | 2026
// handler.go

package class

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/summercamp-api/internal/core"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/classes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{classID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.Create)
			r.Put("/{classID}", h.Update)
			r.Patch("/{classID}/status", h.SetStatus)
			r.Delete("/{classID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status:          q.Get("status"),
		InstructorEmail: q.Get("instructor_email"),
	}

	switch filter.Status {
	case "", StatusPending, StatusApproved, StatusDenied:
	default:
		core.BadRequest(w, "status must be one of: pending approved denied")
		return
	}

	classes, err := h.service.List(r.Context(), filter)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToClassResponseList(classes))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	class, err := h.service.Get(r.Context(), chi.URLParam(r, "classID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "class")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToClassResponse(class))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClassRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, res)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateClassRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Update(r.Context(), chi.URLParam(r, "classID"), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, res)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.SetStatus(r.Context(), chi.URLParam(r, "classID"), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, res)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Delete(r.Context(), chi.URLParam(r, "classID"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, res)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}
