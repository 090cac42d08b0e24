// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	PhotoURL  string    `db:"photo_url"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// RoleNone is the absent role every signup starts with.
const (
	RoleNone       = ""
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
)
