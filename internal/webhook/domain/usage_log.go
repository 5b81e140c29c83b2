package domain

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog records one authenticated webhook delivery attempt for audit
// purposes. Entries are append-only: never mutated or deleted by the core
// (housekeeping deletion is a separate operational command).
type UsageLog struct {
	ID           uuid.UUID
	TokenID      uuid.UUID
	IPAddress    string // caller IP, may be empty
	EndpointPath string
	Success      bool
	ErrorDetail  *string // nil unless the downstream handler failed
	CreatedAt    time.Time
}
