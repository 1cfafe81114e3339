// Package integration provides end-to-end tests for the token vault against
// both PostgreSQL and MySQL databases. Tests are skipped when no test
// database is reachable.
package integration

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/reviewdesk/tokenvault/internal/crypto/domain"
	cryptoService "github.com/reviewdesk/tokenvault/internal/crypto/service"
	"github.com/reviewdesk/tokenvault/internal/tenants/repository"
	tenantsUsecase "github.com/reviewdesk/tokenvault/internal/tenants/usecase"
	"github.com/reviewdesk/tokenvault/internal/testutil"
)

const (
	firstKeyHex  = "8e94b9e2f3a14c5d8e94b9e2f3a14c5d8e94b9e2f3a14c5d8e94b9e2f3a14c5d"
	secondKeyHex = "0f1e2d3c4b5a69780f1e2d3c4b5a69780f1e2d3c4b5a69780f1e2d3c4b5a6978"
)

type driverSetup struct {
	name  string
	setup func(t *testing.T) (*sql.DB, tenantsUsecase.TenantRepository)
}

func driverSetups() []driverSetup {
	return []driverSetup{
		{
			name: "postgres",
			setup: func(t *testing.T) (*sql.DB, tenantsUsecase.TenantRepository) {
				db := testutil.SetupPostgresDB(t)
				return db, repository.NewPostgreSQLTenantRepository(db)
			},
		},
		{
			name: "mysql",
			setup: func(t *testing.T) (*sql.DB, tenantsUsecase.TenantRepository) {
				db := testutil.SetupMySQLDB(t)
				return db, repository.NewMySQLTenantRepository(db)
			},
		},
	}
}

func newCipher(t *testing.T, currentHex, previousHex string) (cryptoService.TokenCipher, *cryptoDomain.Keyring) {
	t.Helper()

	keyring, err := cryptoDomain.LoadKeyring(currentHex, previousHex, slog.Default())
	require.NoError(t, err)
	t.Cleanup(keyring.Close)

	cipher, err := cryptoService.NewTokenCipher(keyring)
	require.NoError(t, err)
	return cipher, keyring
}

func TestTokenLifecycle(t *testing.T) {
	for _, ds := range driverSetups() {
		t.Run(ds.name, func(t *testing.T) {
			db, repo := ds.setup(t)
			defer testutil.TeardownDB(t, db)

			ctx := context.Background()
			logger := slog.Default()
			cipher, _ := newCipher(t, firstKeyHex, "")
			tokenUseCase := tenantsUsecase.NewTokenUseCase(repo, cipher, logger)

			tenantID := testutil.CreateTestTenant(t, db, ds.name, "lifecycle-tenant")

			// Store and read back.
			require.NoError(t, tokenUseCase.Store(ctx, tenantID, "refresh-token-v1"))

			token, err := tokenUseCase.Get(ctx, tenantID)
			require.NoError(t, err)
			assert.Equal(t, "refresh-token-v1", token)

			// The stored value is an envelope, not the plaintext.
			tenant, err := repo.GetByID(ctx, tenantID)
			require.NoError(t, err)
			require.NotNil(t, tenant.RefreshToken)
			assert.NotEqual(t, "refresh-token-v1", *tenant.RefreshToken)

			// Disconnect clears the stored value.
			require.NoError(t, tokenUseCase.Disconnect(ctx, tenantID))

			_, err = tokenUseCase.Get(ctx, tenantID)
			require.Error(t, err)
		})
	}
}

func TestKeyRotationMigration(t *testing.T) {
	for _, ds := range driverSetups() {
		t.Run(ds.name, func(t *testing.T) {
			db, repo := ds.setup(t)
			defer testutil.TeardownDB(t, db)

			ctx := context.Background()
			logger := slog.Default()

			// Seed a token under the first key.
			oldCipher, _ := newCipher(t, firstKeyHex, "")
			oldUseCase := tenantsUsecase.NewTokenUseCase(repo, oldCipher, logger)

			tenantID := testutil.CreateTestTenant(t, db, ds.name, "rotation-tenant")
			require.NoError(t, oldUseCase.Store(ctx, tenantID, "pre-rotation-token"))

			// Rotate: second key becomes current, first moves to previous.
			cipher, keyring := newCipher(t, secondKeyHex, firstKeyHex)
			tokenUseCase := tenantsUsecase.NewTokenUseCase(repo, cipher, logger)
			migrationUseCase := tenantsUsecase.NewTokenMigrationUseCase(repo, cipher, keyring, logger)

			// Reads keep working through the previous-key fallback.
			token, err := tokenUseCase.Get(ctx, tenantID)
			require.NoError(t, err)
			assert.Equal(t, "pre-rotation-token", token)

			// Dry run reports the pending rewrite without writing.
			report, err := migrationUseCase.Migrate(ctx, true)
			require.NoError(t, err)
			assert.Equal(t, 1, report.Migrated)
			assert.Equal(t, 0, report.Failed)

			// Real run rewrites the envelope under the current key.
			report, err = migrationUseCase.Migrate(ctx, false)
			require.NoError(t, err)
			assert.Equal(t, 1, report.Migrated)

			// Second run is a no-op.
			report, err = migrationUseCase.Migrate(ctx, false)
			require.NoError(t, err)
			assert.Equal(t, 0, report.Migrated)
			assert.Equal(t, 1, report.Skipped)

			// The rewritten token decrypts under the current key alone.
			soloCipher, _ := newCipher(t, secondKeyHex, "")
			soloUseCase := tenantsUsecase.NewTokenUseCase(repo, soloCipher, logger)

			token, err = soloUseCase.Get(ctx, tenantID)
			require.NoError(t, err)
			assert.Equal(t, "pre-rotation-token", token)
		})
	}
}

func TestUndecryptableTokenIsCleared(t *testing.T) {
	for _, ds := range driverSetups() {
		t.Run(ds.name, func(t *testing.T) {
			db, repo := ds.setup(t)
			defer testutil.TeardownDB(t, db)

			ctx := context.Background()
			logger := slog.Default()

			// Seed a token under a key that will not be configured afterwards.
			orphanCipher, _ := newCipher(t, firstKeyHex, "")
			orphanUseCase := tenantsUsecase.NewTokenUseCase(repo, orphanCipher, logger)

			tenantID := testutil.CreateTestTenant(t, db, ds.name, "orphan-tenant")
			require.NoError(t, orphanUseCase.Store(ctx, tenantID, "orphaned-token"))

			cipher, _ := newCipher(t, secondKeyHex, "")
			tokenUseCase := tenantsUsecase.NewTokenUseCase(repo, cipher, logger)

			_, err := tokenUseCase.Get(ctx, tenantID)
			require.Error(t, err)
			assert.ErrorIs(t, err, cryptoDomain.ErrTokenDecryption)

			// The stored value was cleared so the tenant re-authorizes.
			tenant, err := repo.GetByID(ctx, tenantID)
			require.NoError(t, err)
			assert.Nil(t, tenant.RefreshToken)
		})
	}
}
