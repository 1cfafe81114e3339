// Package domain defines the core domain models for tenant accounts and
// their stored OAuth refresh tokens.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"
)

// Tenant represents a connected tenant account. RefreshToken holds the
// encrypted envelope as stored at rest; it is nil when the tenant has no
// connection or the stored value was cleared after a decryption failure.
type Tenant struct {
	ID           uuid.UUID
	Name         string
	RefreshToken *string `json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks that the tenant has the fields required for persistence.
func (t *Tenant) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.ID, validation.Required, validation.By(uuidRequired)),
		validation.Field(&t.Name, validation.Required, validation.Length(1, 255)),
	)
}

func uuidRequired(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_uuid_required", "must be a non-nil UUID")
	}
	return nil
}
