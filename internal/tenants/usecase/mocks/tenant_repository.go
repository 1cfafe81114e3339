// Package mocks provides mock implementations for testing use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	tenantsDomain "github.com/reviewdesk/tokenvault/internal/tenants/domain"
)

// MockTenantRepository is a mock implementation of TenantRepository for testing.
type MockTenantRepository struct {
	mock.Mock
}

// Create mocks the Create method of TenantRepository.
func (m *MockTenantRepository) Create(ctx context.Context, tenant *tenantsDomain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// GetByID mocks the GetByID method of TenantRepository.
func (m *MockTenantRepository) GetByID(
	ctx context.Context,
	tenantID uuid.UUID,
) (*tenantsDomain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenantsDomain.Tenant), args.Error(1)
}

// ListWithRefreshToken mocks the ListWithRefreshToken method of TenantRepository.
func (m *MockTenantRepository) ListWithRefreshToken(
	ctx context.Context,
) ([]*tenantsDomain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenantsDomain.Tenant), args.Error(1)
}

// SetRefreshToken mocks the SetRefreshToken method of TenantRepository.
func (m *MockTenantRepository) SetRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
	envelope string,
) error {
	args := m.Called(ctx, tenantID, envelope)
	return args.Error(0)
}

// ReplaceRefreshToken mocks the ReplaceRefreshToken method of TenantRepository.
func (m *MockTenantRepository) ReplaceRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
	envelope string,
) (bool, error) {
	args := m.Called(ctx, tenantID, envelope)
	return args.Bool(0), args.Error(1)
}

// ClearRefreshToken mocks the ClearRefreshToken method of TenantRepository.
func (m *MockTenantRepository) ClearRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}
