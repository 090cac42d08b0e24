// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type TokenRequest struct {
	Email    string `json:"email"     validate:"required,email,max=255"`
	Name     string `json:"name"      validate:"omitempty,max=100"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url,max=2048"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
