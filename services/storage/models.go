package storage

import (
	"time"

	"github.com/google/uuid"
)

// Status is the review state of a submitted application.
// pending → approved and pending → rejected are the only transitions;
// both targets are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// VaultApplication is a finalized wizard submission awaiting SPV review.
// FormData preserves the full collected answer map keyed by section id;
// it is stored as jsonb so new wizard sections never need a migration.
// Reviewer fields are set exactly once, by the decision that moves the
// application out of pending.
type VaultApplication struct {
	ID          uuid.UUID                 `json:"id"`
	Kind        string                    `json:"kind"`
	SubmittedBy string                    `json:"submittedBy"`
	SubmittedAt time.Time                 `json:"submittedAt"`
	Status      Status                    `json:"status"`
	FormData    map[string]map[string]any `json:"formData"`

	ReviewedBy   *string    `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	ReviewReason *string    `json:"reviewReason,omitempty"`
}
