// Package repository implements tenant persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/reviewdesk/tokenvault/internal/database"
	apperrors "github.com/reviewdesk/tokenvault/internal/errors"
	tenantsDomain "github.com/reviewdesk/tokenvault/internal/tenants/domain"
)

// PostgreSQLTenantRepository implements Tenant persistence for PostgreSQL databases.
type PostgreSQLTenantRepository struct {
	db *sql.DB
}

// Create inserts a new tenant into the PostgreSQL database.
func (p *PostgreSQLTenantRepository) Create(ctx context.Context, tenant *tenantsDomain.Tenant) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tenants (id, name, refresh_token, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		tenant.ID,
		tenant.Name,
		tenant.RefreshToken,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create tenant")
	}
	return nil
}

// GetByID retrieves a tenant by its identifier.
func (p *PostgreSQLTenantRepository) GetByID(
	ctx context.Context,
	tenantID uuid.UUID,
) (*tenantsDomain.Tenant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, refresh_token, created_at, updated_at
			  FROM tenants
			  WHERE id = $1`

	var tenant tenantsDomain.Tenant
	err := querier.QueryRowContext(ctx, query, tenantID).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.RefreshToken,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, tenantsDomain.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get tenant by id")
	}

	return &tenant, nil
}

// ListWithRefreshToken returns every tenant that currently stores a refresh
// token, ordered by id for a stable scan order.
func (p *PostgreSQLTenantRepository) ListWithRefreshToken(
	ctx context.Context,
) ([]*tenantsDomain.Tenant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, refresh_token, created_at, updated_at
			  FROM tenants
			  WHERE refresh_token IS NOT NULL
			  ORDER BY id`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tenants with refresh token")
	}
	defer rows.Close()

	var tenants []*tenantsDomain.Tenant
	for rows.Next() {
		var tenant tenantsDomain.Tenant
		err := rows.Scan(
			&tenant.ID,
			&tenant.Name,
			&tenant.RefreshToken,
			&tenant.CreatedAt,
			&tenant.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tenant")
		}
		tenants = append(tenants, &tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tenants")
	}

	return tenants, nil
}

// SetRefreshToken stores an encrypted refresh token envelope for a tenant,
// overwriting any existing value.
func (p *PostgreSQLTenantRepository) SetRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
	envelope string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tenants
			  SET refresh_token = $1, updated_at = $2
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, envelope, time.Now().UTC(), tenantID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set refresh token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return tenantsDomain.ErrTenantNotFound
	}
	return nil
}

// ReplaceRefreshToken overwrites a tenant's stored envelope only when one is
// still present, so a concurrent disconnect is never resurrected. A cleared
// row is not an error; the returned flag reports whether a write happened.
func (p *PostgreSQLTenantRepository) ReplaceRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
	envelope string,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tenants
			  SET refresh_token = $1, updated_at = $2
			  WHERE id = $3 AND refresh_token IS NOT NULL`

	result, err := querier.ExecContext(ctx, query, envelope, time.Now().UTC(), tenantID)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to replace refresh token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read affected rows")
	}
	return affected > 0, nil
}

// ClearRefreshToken removes a tenant's stored refresh token.
func (p *PostgreSQLTenantRepository) ClearRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tenants
			  SET refresh_token = NULL, updated_at = $1
			  WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), tenantID)
	if err != nil {
		return apperrors.Wrap(err, "failed to clear refresh token")
	}
	return nil
}

// NewPostgreSQLTenantRepository creates a new PostgreSQL Tenant repository instance.
func NewPostgreSQLTenantRepository(db *sql.DB) *PostgreSQLTenantRepository {
	return &PostgreSQLTenantRepository{db: db}
}
