// AngelaMos | 2026
// entity.go

package payment

import (
	"time"

	"github.com/lib/pq"
)

// Payment is immutable once written. CourseItems holds the enrollment ids
// the payment settles.
type Payment struct {
	ID            string         `db:"id"             json:"id"`
	Email         string         `db:"email"          json:"email"`
	TransactionID string         `db:"transaction_id" json:"transaction_id,omitempty"`
	Price         float64        `db:"price"          json:"price"`
	Quantity      int            `db:"quantity"       json:"quantity"`
	CourseItems   pq.StringArray `db:"course_items"   json:"course_items"`
	ClassItems    pq.StringArray `db:"class_items"    json:"class_items"`
	ItemNames     pq.StringArray `db:"item_names"     json:"item_names"`
	Status        string         `db:"status"         json:"status,omitempty"`
	CreatedAt     time.Time      `db:"created_at"     json:"created_at"`
}
