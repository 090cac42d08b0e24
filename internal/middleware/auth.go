// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

const (
	EmailKey  contextKey = "user_email"
	ClaimsKey contextKey = "identity_claims"
)

const RoleAdmin = "admin"

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*IdentityClaims, error)
}

// IdentityClaims is the identity carried inside an access credential.
type IdentityClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// RoleLookup resolves the stored role for an email. An unknown email
// reports core.ErrNotFound.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Authenticator rejects requests without a valid credential and stores the
// decoded identity in the request context.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				core.Unauthorized(w, "")
				return
			}

			claims, err := verifier.VerifyAccessToken(
				r.Context(),
				ExtractToken(authHeader),
			)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth decodes a credential when one is present and valid, and
// lets the request through either way.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				claims, err := verifier.VerifyAccessToken(
					r.Context(),
					ExtractToken(authHeader),
				)
				if err == nil {
					r = r.WithContext(WithClaims(r.Context(), claims))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin must run after Authenticator. The role is looked up by the
// verified email, never by anything the client sends in the request.
func RequireAdmin(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := GetEmail(r.Context())
			if email == "" {
				core.Unauthorized(w, "")
				return
			}

			role, err := lookup.RoleByEmail(r.Context(), email)
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				core.InternalServerError(w, err)
				return
			}

			if role != RoleAdmin {
				slog.WarnContext(r.Context(), "admin access denied",
					"email", email,
					"path", r.URL.Path,
				)
				core.Forbidden(w, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken returns the second space-delimited segment of the header.
// A header with no second segment yields "", which never verifies.
func ExtractToken(authHeader string) string {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func WithClaims(ctx context.Context, claims *IdentityClaims) context.Context {
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	return context.WithValue(ctx, ClaimsKey, claims)
}

func GetEmail(ctx context.Context) string {
	if email, ok := ctx.Value(EmailKey).(string); ok {
		return email
	}
	return ""
}

func GetClaims(ctx context.Context) *IdentityClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*IdentityClaims); ok {
		return claims
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetEmail(ctx) != ""
}
