package models

import (
	"time"

	"github.com/google/uuid"
)

// BatchAuditEntry records one batch-operation invocation: what was
// requested, how the server answered and how the run was classified.
type BatchAuditEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Operation string    `json:"operation" db:"operation"`
	Actor     string    `json:"actor" db:"actor"`
	TargetID  *string   `json:"target_id" db:"target_id"`
	Requested []string  `json:"requested" db:"requested"`
	Succeeded []string  `json:"succeeded" db:"succeeded"`
	Failed    []string  `json:"failed" db:"failed"`
	Invalid   []string  `json:"invalid" db:"invalid"`
	Outcome   string    `json:"outcome" db:"outcome"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BatchAuditFilters narrows audit listings.
type BatchAuditFilters struct {
	Operation *string    `json:"operation,omitempty"`
	Actor     *string    `json:"actor,omitempty"`
	Outcome   *string    `json:"outcome,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}
