// AngelaMos | 2026
// dto.go

package enroll

type CreateEnrollmentRequest struct {
	Email          string  `json:"email"           validate:"required,email,max=255"`
	ClassID        string  `json:"class_id"        validate:"required,max=64"`
	Name           string  `json:"name"            validate:"omitempty,max=200"`
	Image          string  `json:"image"           validate:"omitempty,url,max=2048"`
	InstructorName string  `json:"instructor_name" validate:"omitempty,max=100"`
	Price          float64 `json:"price"           validate:"gte=0"`
}
