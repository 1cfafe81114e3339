package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	cryptoDomain "github.com/reviewdesk/tokenvault/internal/crypto/domain"
	cryptoService "github.com/reviewdesk/tokenvault/internal/crypto/service"
	tenantsDomain "github.com/reviewdesk/tokenvault/internal/tenants/domain"
)

// tokenUseCase implements the TokenUseCase interface.
type tokenUseCase struct {
	tenantRepo TenantRepository
	cipher     cryptoService.TokenCipher
	logger     *slog.Logger
}

// Store encrypts a plaintext refresh token and persists the envelope.
func (t *tokenUseCase) Store(ctx context.Context, tenantID uuid.UUID, token string) error {
	envelope, err := t.cipher.Encrypt(token)
	if err != nil {
		return err
	}

	return t.tenantRepo.SetRefreshToken(ctx, tenantID, envelope)
}

// Get retrieves and decrypts a tenant's refresh token.
func (t *tokenUseCase) Get(ctx context.Context, tenantID uuid.UUID) (string, error) {
	tenant, err := t.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return "", err
	}

	if tenant.RefreshToken == nil {
		return "", tenantsDomain.ErrNoRefreshToken
	}

	plaintext, err := t.cipher.Decrypt(*tenant.RefreshToken)
	if err != nil {
		// An envelope that cannot be decrypted under any configured key is
		// unrecoverable. Clear it so the tenant goes through the OAuth flow
		// again instead of failing on every read.
		if errors.Is(err, cryptoDomain.ErrTokenDecryption) ||
			errors.Is(err, cryptoDomain.ErrInvalidEnvelope) {
			t.logger.Warn(
				"clearing undecryptable refresh token",
				slog.String("tenant_id", tenantID.String()),
			)
			if clearErr := t.tenantRepo.ClearRefreshToken(ctx, tenantID); clearErr != nil {
				t.logger.Error(
					"failed to clear refresh token",
					slog.String("tenant_id", tenantID.String()),
					slog.Any("error", clearErr),
				)
			}
		}
		return "", err
	}

	return plaintext, nil
}

// Disconnect removes a tenant's stored refresh token.
func (t *tokenUseCase) Disconnect(ctx context.Context, tenantID uuid.UUID) error {
	return t.tenantRepo.ClearRefreshToken(ctx, tenantID)
}

// NewTokenUseCase creates a new token use case instance with the provided dependencies.
func NewTokenUseCase(
	tenantRepo TenantRepository,
	cipher cryptoService.TokenCipher,
	logger *slog.Logger,
) TokenUseCase {
	return &tokenUseCase{
		tenantRepo: tenantRepo,
		cipher:     cipher,
		logger:     logger,
	}
}
