// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"net/http"
	"strings"

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

// RegisterRoutes mounts the /users endpoints. Signup and the role checks
// stay open; listing, promotion and removal are admin-only.
//
// The admin and instructor sub-routes share one {ref} segment: an email
// for GET and a user id for PATCH.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optionalAuth, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Signup)

		r.With(optionalAuth).Get("/admin/{ref}", h.CheckAdmin)
		r.With(optionalAuth).Get("/instructor/{ref}", h.CheckInstructor)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Get("/", h.ListUsers)
			r.Patch("/admin/{ref}", h.MakeAdmin)
			r.Patch("/instructor/{ref}", h.MakeInstructor)
			r.Delete("/{userID}", h.DeleteUser)
		})
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	res, err := h.service.Signup(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if res.Existing {
		core.Message(w, "user already exists")
		return
	}

	core.Created(w, core.InsertResult{InsertedID: res.InsertedID})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	ok, handled := h.checkRole(w, r, RoleAdmin)
	if handled {
		return
	}
	core.OK(w, AdminCheckResponse{Admin: ok})
}

func (h *Handler) CheckInstructor(w http.ResponseWriter, r *http.Request) {
	ok, handled := h.checkRole(w, r, RoleInstructor)
	if handled {
		return
	}
	core.OK(w, InstructorCheckResponse{Instructor: ok})
}

// checkRole answers false when the caller presented a credential for a
// different email than the one asked about.
func (h *Handler) checkRole(
	w http.ResponseWriter,
	r *http.Request,
	role string,
) (bool, bool) {
	email := chi.URLParam(r, "ref")

	if verified := middleware.GetEmail(r.Context()); verified != "" &&
		!strings.EqualFold(verified, email) {
		return false, false
	}

	ok, err := h.service.HasRole(r.Context(), email, role)
	if err != nil {
		core.InternalServerError(w, err)
		return false, true
	}

	return ok, false
}

func (h *Handler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, RoleAdmin)
}

func (h *Handler) MakeInstructor(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, RoleInstructor)
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request, role string) {
	res, err := h.service.SetRole(r.Context(), chi.URLParam(r, "ref"), role)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, res)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, res)
}
