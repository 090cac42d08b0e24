// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/summercamp-api/internal/core"
	"github.com/carterperez-dev/summercamp-api/internal/middleware"
)

type TokenIssuer interface {
	IssueAccessToken(
		claims middleware.IdentityClaims,
	) (string, time.Time, error)
}

type Handler struct {
	issuer    TokenIssuer
	validator *validator.Validate
}

func NewHandler(issuer TokenIssuer) *Handler {
	return &Handler{
		issuer:    issuer,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/jwt", h.IssueToken)
}

// IssueToken mints a credential for the posted identity. The caller is
// trusted to have signed in with the external identity provider.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	token, expiresAt, err := h.issuer.IssueAccessToken(middleware.IdentityClaims{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
