// AngelaMos | 2026
// dto.go

package class

import (
	"time"
)

type CreateClassRequest struct {
	Name            string  `json:"name"             validate:"required,min=1,max=200"`
	Image           string  `json:"image"            validate:"omitempty,url,max=2048"`
	Description     string  `json:"description"      validate:"omitempty,max=5000"`
	InstructorName  string  `json:"instructor_name"  validate:"omitempty,max=100"`
	InstructorEmail string  `json:"instructor_email" validate:"required,email,max=255"`
	AvailableSeats  int     `json:"available_seats"  validate:"gte=0,lte=10000"`
	Price           float64 `json:"price"            validate:"gte=0"`
}

// UpdateClassRequest replaces the editable fields; status and feedback go
// through UpdateStatusRequest.
type UpdateClassRequest struct {
	Name           string  `json:"name"            validate:"required,min=1,max=200"`
	Image          string  `json:"image"           validate:"omitempty,url,max=2048"`
	Description    string  `json:"description"     validate:"omitempty,max=5000"`
	InstructorName string  `json:"instructor_name" validate:"omitempty,max=100"`
	AvailableSeats int     `json:"available_seats" validate:"gte=0,lte=10000"`
	Price          float64 `json:"price"           validate:"gte=0"`
}

type UpdateStatusRequest struct {
	Status   string `json:"status"   validate:"required,oneof=pending approved denied"`
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}

type ListFilter struct {
	Status          string
	InstructorEmail string
}

type ClassResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Image           string    `json:"image,omitempty"`
	Description     string    `json:"description,omitempty"`
	InstructorName  string    `json:"instructor_name,omitempty"`
	InstructorEmail string    `json:"instructor_email"`
	AvailableSeats  int       `json:"available_seats"`
	Enrolled        int       `json:"enrolled"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	Feedback        string    `json:"feedback,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToClassResponse(c *Class) ClassResponse {
	return ClassResponse{
		ID:              c.ID,
		Name:            c.Name,
		Image:           c.Image,
		Description:     c.Description,
		InstructorName:  c.InstructorName,
		InstructorEmail: c.InstructorEmail,
		AvailableSeats:  c.AvailableSeats,
		Enrolled:        c.Enrolled,
		Price:           c.Price,
		Status:          c.Status,
		Feedback:        c.Feedback,
		CreatedAt:       c.CreatedAt,
	}
}

func ToClassResponseList(classes []Class) []ClassResponse {
	out := make([]ClassResponse, 0, len(classes))
	for i := range classes {
		out = append(out, ToClassResponse(&classes[i]))
	}
	return out
}
