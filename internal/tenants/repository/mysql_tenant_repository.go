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

// MySQLTenantRepository implements Tenant persistence for MySQL databases.
type MySQLTenantRepository struct {
	db *sql.DB
}

// Create inserts a new tenant into the MySQL database.
func (m *MySQLTenantRepository) Create(ctx context.Context, tenant *tenantsDomain.Tenant) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tenants (id, name, refresh_token, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := tenant.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal tenant id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLTenantRepository) GetByID(
	ctx context.Context,
	tenantID uuid.UUID,
) (*tenantsDomain.Tenant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, refresh_token, created_at, updated_at
			  FROM tenants
			  WHERE id = ?`

	binaryID, err := tenantID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal tenant id")
	}

	var tenant tenantsDomain.Tenant
	var id []byte

	err = querier.QueryRowContext(ctx, query, binaryID).Scan(
		&id,
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

	if err := tenant.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal tenant id")
	}

	return &tenant, nil
}

// ListWithRefreshToken returns every tenant that currently stores a refresh
// token, ordered by id for a stable scan order.
func (m *MySQLTenantRepository) ListWithRefreshToken(
	ctx context.Context,
) ([]*tenantsDomain.Tenant, error) {
	querier := database.GetTx(ctx, m.db)

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
		var id []byte

		err := rows.Scan(
			&id,
			&tenant.Name,
			&tenant.RefreshToken,
			&tenant.CreatedAt,
			&tenant.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tenant")
		}
		if err := tenant.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal tenant id")
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
func (m *MySQLTenantRepository) SetRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
	envelope string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tenants
			  SET refresh_token = ?, updated_at = ?
			  WHERE id = ?`

	id, err := tenantID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal tenant id")
	}

	result, err := querier.ExecContext(ctx, query, envelope, time.Now().UTC(), id)
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
func (m *MySQLTenantRepository) ReplaceRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
	envelope string,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tenants
			  SET refresh_token = ?, updated_at = ?
			  WHERE id = ? AND refresh_token IS NOT NULL`

	id, err := tenantID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal tenant id")
	}

	result, err := querier.ExecContext(ctx, query, envelope, time.Now().UTC(), id)
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
func (m *MySQLTenantRepository) ClearRefreshToken(
	ctx context.Context,
	tenantID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tenants
			  SET refresh_token = NULL, updated_at = ?
			  WHERE id = ?`

	id, err := tenantID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal tenant id")
	}

	_, err = querier.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to clear refresh token")
	}
	return nil
}

// NewMySQLTenantRepository creates a new MySQL Tenant repository instance.
func NewMySQLTenantRepository(db *sql.DB) *MySQLTenantRepository {
	return &MySQLTenantRepository{db: db}
}
