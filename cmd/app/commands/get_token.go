package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	tenantsUsecase "github.com/reviewdesk/tokenvault/internal/tenants/usecase"
)

// RunGetToken retrieves and decrypts a tenant's refresh token. An envelope
// that fails under every configured key has already been cleared by the use
// case; the command reports the failure and exits non-zero.
func RunGetToken(
	ctx context.Context,
	useCase tenantsUsecase.TokenUseCase,
	logger *slog.Logger,
	cmdIO IOTuple,
	tenantIDStr string,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	tenantID, err := uuid.Parse(tenantIDStr)
	if err != nil {
		return fmt.Errorf("invalid tenant-id: %w", err)
	}

	token, err := useCase.Get(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}

	logger.Info("refresh token retrieved",
		slog.String("tenant_id", tenantID.String()),
	)

	if format == "json" {
		jsonBytes, err := json.MarshalIndent(map[string]string{
			"tenant_id": tenantID.String(),
			"token":     token,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmdIO.Writer, string(jsonBytes))
		return nil
	}

	fmt.Fprintln(cmdIO.Writer, token)
	return nil
}
