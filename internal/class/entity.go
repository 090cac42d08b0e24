// AngelaMos | 2026
// entity.go

package class

import (
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

type Class struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Image           string    `db:"image"`
	Description     string    `db:"description"`
	InstructorName  string    `db:"instructor_name"`
	InstructorEmail string    `db:"instructor_email"`
	AvailableSeats  int       `db:"available_seats"`
	Enrolled        int       `db:"enrolled"`
	Price           float64   `db:"price"`
	Status          string    `db:"status"`
	Feedback        string    `db:"feedback"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (c *Class) IsApproved() bool {
	return c.Status == StatusApproved
}

// SeatsLeft never reports a negative count.
func (c *Class) SeatsLeft() int {
	return max(c.AvailableSeats-c.Enrolled, 0)
}
