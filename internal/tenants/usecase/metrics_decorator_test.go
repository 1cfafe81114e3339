package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tenantsDomain "github.com/reviewdesk/tokenvault/internal/tenants/domain"
	"github.com/reviewdesk/tokenvault/internal/tenants/usecase/mocks"
)

// recordedMetric captures one BusinessMetrics call for assertions.
type recordedMetric struct {
	domain    string
	operation string
	status    string
}

type metricsRecorder struct {
	operations []recordedMetric
	durations  []recordedMetric
}

func (m *metricsRecorder) RecordOperation(_ context.Context, domain, operation, status string) {
	m.operations = append(m.operations, recordedMetric{domain, operation, status})
}

func (m *metricsRecorder) RecordDuration(
	_ context.Context,
	domain, operation string,
	_ time.Duration,
	status string,
) {
	m.durations = append(m.durations, recordedMetric{domain, operation, status})
}

func TestTokenUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())
	cipher := newTestCipher(t, testCurrentKeyHex, "")

	t.Run("records success", func(t *testing.T) {
		mockRepo := new(mocks.MockTenantRepository)
		mockRepo.On("ClearRefreshToken", ctx, tenantID).Return(nil)

		recorder := &metricsRecorder{}
		useCase := NewTokenUseCaseWithMetrics(
			NewTokenUseCase(mockRepo, cipher, slog.Default()),
			recorder,
		)

		err := useCase.Disconnect(ctx, tenantID)
		require.NoError(t, err)

		require.Len(t, recorder.operations, 1)
		assert.Equal(t, recordedMetric{"tokens", "token_disconnect", "success"}, recorder.operations[0])
		require.Len(t, recorder.durations, 1)
	})

	t.Run("records error", func(t *testing.T) {
		mockRepo := new(mocks.MockTenantRepository)
		mockRepo.On("GetByID", ctx, tenantID).Return(nil, tenantsDomain.ErrTenantNotFound)

		recorder := &metricsRecorder{}
		useCase := NewTokenUseCaseWithMetrics(
			NewTokenUseCase(mockRepo, cipher, slog.Default()),
			recorder,
		)

		_, err := useCase.Get(ctx, tenantID)
		require.Error(t, err)

		require.Len(t, recorder.operations, 1)
		assert.Equal(t, recordedMetric{"tokens", "token_get", "error"}, recorder.operations[0])
	})
}

func TestTokenMigrationUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	fixture := newMigrationFixture(t)

	t.Run("clean sweep records success", func(t *testing.T) {
		mockRepo := new(mocks.MockTenantRepository)
		mockRepo.On("ListWithRefreshToken", ctx).
			Return([]*tenantsDomain.Tenant{fixture.currentTenant}, nil)

		recorder := &metricsRecorder{}
		useCase := NewTokenMigrationUseCaseWithMetrics(
			NewTokenMigrationUseCase(mockRepo, fixture.cipher, fixture.keyring, slog.Default()),
			recorder,
		)

		report, err := useCase.Migrate(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Skipped)

		require.Len(t, recorder.operations, 1)
		assert.Equal(t, recordedMetric{"tokens", "token_migrate", "success"}, recorder.operations[0])
	})

	t.Run("row failures record error", func(t *testing.T) {
		mockRepo := new(mocks.MockTenantRepository)
		mockRepo.On("ListWithRefreshToken", ctx).
			Return([]*tenantsDomain.Tenant{fixture.corruptTenant}, nil)

		recorder := &metricsRecorder{}
		useCase := NewTokenMigrationUseCaseWithMetrics(
			NewTokenMigrationUseCase(mockRepo, fixture.cipher, fixture.keyring, slog.Default()),
			recorder,
		)

		report, err := useCase.Migrate(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Failed)

		require.Len(t, recorder.operations, 1)
		assert.Equal(t, recordedMetric{"tokens", "token_migrate", "error"}, recorder.operations[0])
	})
}
