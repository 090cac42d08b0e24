// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type SignupRequest struct {
	Email    string `json:"email"     validate:"required,email,max=255"`
	Name     string `json:"name"      validate:"omitempty,max=100"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url,max=2048"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type InstructorCheckResponse struct {
	Instructor bool `json:"instructor"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		PhotoURL:  u.PhotoURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
