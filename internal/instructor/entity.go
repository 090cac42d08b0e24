// AngelaMos | 2026
// entity.go

package instructor

import (
	"time"
)

type Instructor struct {
	ID        string    `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Email     string    `db:"email"      json:"email"`
	Image     string    `db:"image"      json:"image,omitempty"`
	Students  int       `db:"students"   json:"students"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
