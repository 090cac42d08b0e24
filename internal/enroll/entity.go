// AngelaMos | 2026
// entity.go

package enroll

import (
	"time"
)

// Enrollment is a pending, unpaid class selection owned by Email.
type Enrollment struct {
	ID             string    `db:"id"              json:"id"`
	Email          string    `db:"email"           json:"email"`
	ClassID        string    `db:"class_id"        json:"class_id"`
	Name           string    `db:"name"            json:"name,omitempty"`
	Image          string    `db:"image"           json:"image,omitempty"`
	InstructorName string    `db:"instructor_name" json:"instructor_name,omitempty"`
	Price          float64   `db:"price"           json:"price"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
}
