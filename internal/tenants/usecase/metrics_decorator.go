package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reviewdesk/tokenvault/internal/metrics"
	tenantsDomain "github.com/reviewdesk/tokenvault/internal/tenants/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Store records metrics for token storage operations.
func (t *tokenUseCaseWithMetrics) Store(ctx context.Context, tenantID uuid.UUID, token string) error {
	start := time.Now()
	err := t.next.Store(ctx, tenantID, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "token_store", status)
	t.metrics.RecordDuration(ctx, "tokens", "token_store", time.Since(start), status)

	return err
}

// Get records metrics for token retrieval operations.
func (t *tokenUseCaseWithMetrics) Get(ctx context.Context, tenantID uuid.UUID) (string, error) {
	start := time.Now()
	token, err := t.next.Get(ctx, tenantID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "token_get", status)
	t.metrics.RecordDuration(ctx, "tokens", "token_get", time.Since(start), status)

	return token, err
}

// Disconnect records metrics for token removal operations.
func (t *tokenUseCaseWithMetrics) Disconnect(ctx context.Context, tenantID uuid.UUID) error {
	start := time.Now()
	err := t.next.Disconnect(ctx, tenantID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "token_disconnect", status)
	t.metrics.RecordDuration(ctx, "tokens", "token_disconnect", time.Since(start), status)

	return err
}

// tokenMigrationUseCaseWithMetrics decorates TokenMigrationUseCase with
// metrics instrumentation.
type tokenMigrationUseCaseWithMetrics struct {
	next    TokenMigrationUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenMigrationUseCaseWithMetrics wraps a TokenMigrationUseCase with
// metrics recording.
func NewTokenMigrationUseCaseWithMetrics(
	useCase TokenMigrationUseCase,
	m metrics.BusinessMetrics,
) TokenMigrationUseCase {
	return &tokenMigrationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Migrate records metrics for migration sweeps.
func (t *tokenMigrationUseCaseWithMetrics) Migrate(
	ctx context.Context,
	dryRun bool,
) (*tenantsDomain.MigrationReport, error) {
	start := time.Now()
	report, err := t.next.Migrate(ctx, dryRun)

	status := "success"
	if err != nil || (report != nil && report.Failed > 0) {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "token_migrate", status)
	t.metrics.RecordDuration(ctx, "tokens", "token_migrate", time.Since(start), status)

	return report, err
}
