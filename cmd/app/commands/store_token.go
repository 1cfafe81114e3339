package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	tenantsUsecase "github.com/reviewdesk/tokenvault/internal/tenants/usecase"
)

// RunStoreToken encrypts and stores a refresh token for a tenant. When the
// token flag is empty the value is read from the command input instead, so
// it never lands in shell history.
func RunStoreToken(
	ctx context.Context,
	useCase tenantsUsecase.TokenUseCase,
	logger *slog.Logger,
	cmdIO IOTuple,
	tenantIDStr string,
	token string,
) error {
	tenantID, err := uuid.Parse(tenantIDStr)
	if err != nil {
		return fmt.Errorf("invalid tenant-id: %w", err)
	}

	if token == "" {
		fmt.Fprint(cmdIO.Writer, "Refresh token: ")
		reader := bufio.NewReader(cmdIO.Reader)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("refresh token must not be empty")
	}

	if err := useCase.Store(ctx, tenantID, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	logger.Info("refresh token stored",
		slog.String("tenant_id", tenantID.String()),
	)
	fmt.Fprintf(cmdIO.Writer, "Stored refresh token for tenant %s\n", tenantID)
	return nil
}
