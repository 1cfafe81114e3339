package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	tenantsUsecase "github.com/reviewdesk/tokenvault/internal/tenants/usecase"
)

// RunDisconnectToken removes a tenant's stored refresh token.
func RunDisconnectToken(
	ctx context.Context,
	useCase tenantsUsecase.TokenUseCase,
	logger *slog.Logger,
	cmdIO IOTuple,
	tenantIDStr string,
) error {
	tenantID, err := uuid.Parse(tenantIDStr)
	if err != nil {
		return fmt.Errorf("invalid tenant-id: %w", err)
	}

	if err := useCase.Disconnect(ctx, tenantID); err != nil {
		return fmt.Errorf("failed to disconnect tenant: %w", err)
	}

	logger.Info("refresh token removed",
		slog.String("tenant_id", tenantID.String()),
	)
	fmt.Fprintf(cmdIO.Writer, "Removed refresh token for tenant %s\n", tenantID)
	return nil
}
