// AngelaMos | 2026
// dto.go

package payment

import (
	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type IntentRequest struct {
	Price float64 `json:"price" validate:"gt=0,lte=1000000"`
}

type IntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type CommitRequest struct {
	Email         string   `json:"email"          validate:"required,email,max=255"`
	TransactionID string   `json:"transaction_id" validate:"omitempty,max=255"`
	Price         float64  `json:"price"          validate:"gte=0"`
	Quantity      int      `json:"quantity"       validate:"gte=0"`
	CourseItems   []string `json:"course_items"   validate:"required,min=1,max=100,dive,required,max=64"`
	ClassItems    []string `json:"class_items"    validate:"omitempty,max=100,dive,max=64"`
	ItemNames     []string `json:"item_names"     validate:"omitempty,max=100,dive,max=200"`
	Status        string   `json:"status"         validate:"omitempty,max=50"`
}

// CommitResponse carries both write results. A DeleteResult of zero
// alongside a non-empty CourseItems means the enrollments were not cleared.
type CommitResponse struct {
	Result       core.InsertResult `json:"result"`
	DeleteResult core.DeleteResult `json:"delete_result"`
}
