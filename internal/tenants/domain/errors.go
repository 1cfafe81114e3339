package domain

import (
	"github.com/reviewdesk/tokenvault/internal/errors"
)

// Tenant-specific error definitions.
var (
	// ErrTenantNotFound indicates the requested tenant does not exist.
	ErrTenantNotFound = errors.Wrap(errors.ErrNotFound, "tenant not found")

	// ErrNoRefreshToken indicates the tenant has no stored refresh token.
	ErrNoRefreshToken = errors.Wrap(errors.ErrNotFound, "tenant has no refresh token")
)
