// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/summercamp-api/internal/config"
	"github.com/carterperez-dev/summercamp-api/internal/core"
	"github.com/carterperez-dev/summercamp-api/internal/middleware"
)

const (
	claimEmail    = "email"
	claimName     = "name"
	claimPhotoURL = "photo_url"
)

var ErrMissingSecret = errors.New("jwt secret is not configured")

// JWTManager issues and verifies HS256 access credentials signed with the
// shared server secret.
type JWTManager struct {
	secret []byte
	config config.JWTConfig
	now    func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.AccessTokenExpire <= 0 {
		return nil, fmt.Errorf("jwt access token expire must be positive")
	}

	return &JWTManager{
		secret: []byte(cfg.Secret),
		config: cfg,
		now:    time.Now,
	}, nil
}

// IssueAccessToken signs claims into a credential valid for the configured
// window. It returns the expiry alongside the token.
func (m *JWTManager) IssueAccessToken(
	claims middleware.IdentityClaims,
) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.config.AccessTokenExpire)

	builder := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim(claimEmail, claims.Email)

	if m.config.Issuer != "" {
		builder = builder.Issuer(m.config.Issuer)
	}
	if claims.Name != "" {
		builder = builder.Claim(claimName, claims.Name)
	}
	if claims.PhotoURL != "" {
		builder = builder.Claim(claimPhotoURL, claims.PhotoURL)
	}

	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

func (m *JWTManager) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.IdentityClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("verify token: empty token: %w", core.ErrTokenInvalid)
	}

	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256(), m.secret),
		jwt.WithValidate(true),
	}
	if m.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.config.Issuer))
	}

	token, err := jwt.Parse([]byte(tokenString), opts...)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var email string
	if err := token.Get(claimEmail, &email); err != nil || email == "" {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenInvalid,
		)
	}

	claims := &middleware.IdentityClaims{Email: email}

	//nolint:errcheck // optional claims
	_ = token.Get(claimName, &claims.Name)
	//nolint:errcheck // optional claims
	_ = token.Get(claimPhotoURL, &claims.PhotoURL)

	return claims, nil
}

func isTokenExpiredError(err error) bool {
	return errors.Is(err, jwt.TokenExpiredError())
}

var _ middleware.TokenVerifier = (*JWTManager)(nil)
