package domain

import (
	"github.com/google/uuid"
)

// RowFailure describes a single tenant whose token could not be re-encrypted
// during a migration sweep.
type RowFailure struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Reason   string    `json:"reason"`
}

// MigrationReport summarizes one migration sweep over all stored tokens.
type MigrationReport struct {
	Total    int          `json:"total"`
	Migrated int          `json:"migrated"`
	Skipped  int          `json:"skipped"`
	Failed   int          `json:"failed"`
	DryRun   bool         `json:"dry_run"`
	Failures []RowFailure `json:"failures,omitempty"`
}
