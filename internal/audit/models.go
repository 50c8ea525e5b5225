package audit

import "time"

// Entry is an immutable, append-only record of a cadence-status change.
//
// Invariants:
// - Entries are never updated or deleted.
// - Actor capture is best-effort; a status change must not fail because the
//   audit write failed.
//
// Storage recommendation (Postgres):
// - Table historico_status with an INSERT-only policy.
// - Optional: trigger to prevent UPDATE/DELETE.

type Entry struct {
	ID string `json:"id" db:"id"`

	CompanyDomain string `json:"empresa_dominio" db:"empresa_dominio"`

	// FromStatus is empty for a company entering the pipeline.
	FromStatus string `json:"status_anterior,omitempty" db:"status_anterior"`
	ToStatus   string `json:"status_novo" db:"status_novo"`

	// ActorUserID is empty when the change came from the automation webhook
	// rather than a logged-in user.
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
