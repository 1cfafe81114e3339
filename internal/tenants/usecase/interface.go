// Package usecase implements the business logic for tenant refresh token
// storage: encrypt-on-write, decrypt-on-read with rotation fallback, and the
// key rotation migration sweep.
package usecase

import (
	"context"

	"github.com/google/uuid"

	tenantsDomain "github.com/reviewdesk/tokenvault/internal/tenants/domain"
)

// TenantRepository defines the interface for Tenant persistence operations.
type TenantRepository interface {
	Create(ctx context.Context, tenant *tenantsDomain.Tenant) error
	GetByID(ctx context.Context, tenantID uuid.UUID) (*tenantsDomain.Tenant, error)
	ListWithRefreshToken(ctx context.Context) ([]*tenantsDomain.Tenant, error)
	SetRefreshToken(ctx context.Context, tenantID uuid.UUID, envelope string) error
	ReplaceRefreshToken(ctx context.Context, tenantID uuid.UUID, envelope string) (bool, error)
	ClearRefreshToken(ctx context.Context, tenantID uuid.UUID) error
}

// TokenUseCase defines the business logic for tenant refresh token handling.
type TokenUseCase interface {
	// Store encrypts a plaintext refresh token and persists the envelope.
	Store(ctx context.Context, tenantID uuid.UUID, token string) error
	// Get retrieves and decrypts a tenant's refresh token. When the stored
	// envelope fails to decrypt under every configured key, the stored value
	// is cleared so the tenant re-authorizes, and the decryption error is
	// returned.
	Get(ctx context.Context, tenantID uuid.UUID) (string, error)
	// Disconnect removes a tenant's stored refresh token.
	Disconnect(ctx context.Context, tenantID uuid.UUID) error
}

// TokenMigrationUseCase re-encrypts stored tokens under the current key.
type TokenMigrationUseCase interface {
	// Migrate scans every tenant with a stored token and re-encrypts those
	// not already sealed under the current key. With dryRun set, nothing is
	// written and the report counts what a real run would do. Failures never
	// abort the sweep.
	Migrate(ctx context.Context, dryRun bool) (*tenantsDomain.MigrationReport, error)
}
