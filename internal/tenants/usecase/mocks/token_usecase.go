package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	tenantsDomain "github.com/reviewdesk/tokenvault/internal/tenants/domain"
)

// MockTokenUseCase is a mock implementation of TokenUseCase for testing.
type MockTokenUseCase struct {
	mock.Mock
}

// Store mocks the Store method of TokenUseCase.
func (m *MockTokenUseCase) Store(ctx context.Context, tenantID uuid.UUID, token string) error {
	args := m.Called(ctx, tenantID, token)
	return args.Error(0)
}

// Get mocks the Get method of TokenUseCase.
func (m *MockTokenUseCase) Get(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// Disconnect mocks the Disconnect method of TokenUseCase.
func (m *MockTokenUseCase) Disconnect(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// MockTokenMigrationUseCase is a mock implementation of TokenMigrationUseCase for testing.
type MockTokenMigrationUseCase struct {
	mock.Mock
}

// Migrate mocks the Migrate method of TokenMigrationUseCase.
func (m *MockTokenMigrationUseCase) Migrate(
	ctx context.Context,
	dryRun bool,
) (*tenantsDomain.MigrationReport, error) {
	args := m.Called(ctx, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenantsDomain.MigrationReport), args.Error(1)
}
