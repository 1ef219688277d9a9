package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyLog stores the response of a charge creation so a retried
// request with the same reference gets the same charge back.
type IdempotencyLog struct {
	Key          string    `json:"key"` // "user_id:reference_id"
	ChargeID     uuid.UUID `json:"charge_id"`
	ResponseJSON []byte    `json:"response_json"`
	CreatedAt    time.Time `json:"created_at"`
}

// BuildIdempotencyKey scopes a client reference to the user that sent it.
func BuildIdempotencyKey(userID uuid.UUID, referenceID string) string {
	return userID.String() + ":" + referenceID
}
