// AngelaMos | 2026
// store.go

package core

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Write results mirror what the document store reports back, and are
// returned to clients as-is.

type InsertResult struct {
	InsertedID string `json:"inserted_id"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matched_count"  db:"matched"`
	ModifiedCount int64 `json:"modified_count" db:"modified"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deleted_count"`
}

func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
