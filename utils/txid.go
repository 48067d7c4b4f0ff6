package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTransactionID produces the human-readable identifier assigned to an
// investment at creation, e.g. KONZE-9F3A1C7B. Uniqueness is backed by the
// unique index on investments.transaction_id.
func GenerateTransactionID() string {
	id := uuid.NewString()
	return "KONZE-" + strings.ToUpper(id[:8])
}
