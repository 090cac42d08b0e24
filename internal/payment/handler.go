// AngelaMos | 2026
// handler.go

package payment

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

// RegisterRoutes mounts the checkout endpoints. limiter wraps the routes
// that reach the payment gateway or write payment records.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, limiter func(http.Handler) http.Handler,
) {
	r.With(limiter).Post("/create-payment-intent", h.CreateIntent)

	r.Route("/payments", func(r chi.Router) {
		r.Use(authenticator)

		r.With(limiter).Post("/", h.Commit)
		r.Get("/", h.History)
	})
}

func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	secret, err := h.service.CreateIntent(r.Context(), req.Price)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, IntentResponse{ClientSecret: secret})
}

func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	res, err := h.service.Commit(r.Context(), middleware.GetEmail(r.Context()), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, res)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.History(
		r.Context(),
		r.URL.Query().Get("email"),
		middleware.GetEmail(r.Context()),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, payments)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid price")
	default:
		core.InternalServerError(w, err)
	}
}
