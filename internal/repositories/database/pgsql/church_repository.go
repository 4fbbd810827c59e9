package pgsql

import (
	"context"
	"errors"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	"github.com/ecclesiahq/ecclesia-backend/internal/models"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxChurchRepository struct {
	BaseRepository
}

// newPgxChurchRepository creates a new repository for church data.
func newPgxChurchRepository(pool *pgxpool.Pool) portsrepo.ChurchRepositoryWithTx {
	return &PgxChurchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxChurchRepository implements portsrepo.ChurchRepositoryWithTx
var _ portsrepo.ChurchRepositoryWithTx = (*PgxChurchRepository)(nil)

const churchColumns = `c.church_id, c.name, c.description, c.default_currency_code, c.is_active, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by`

func scanChurch(row pgx.Row) (models.Church, error) {
	var m models.Church
	err := row.Scan(
		&m.ChurchID,
		&m.Name,
		&m.Description,
		&m.DefaultCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxChurchRepository) SaveChurch(ctx context.Context, church domain.Church) error {
	modelChurch := mapping.ToModelChurch(church)
	query := `
		INSERT INTO churches (
			church_id, name, description, default_currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelChurch.ChurchID,
		modelChurch.Name,
		modelChurch.Description,
		modelChurch.DefaultCurrencyCode,
		modelChurch.IsActive,
		modelChurch.CreatedAt,
		modelChurch.CreatedBy,
		modelChurch.LastUpdatedAt,
		modelChurch.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewAppError(409, "church ID "+modelChurch.ChurchID+" already exists", apperrors.ErrDuplicate)
			}
		}
		return apperrors.NewAppError(500, "failed to save church "+modelChurch.ChurchID, err)
	}
	return nil
}

func (r *PgxChurchRepository) FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error) {
	query := `
		SELECT ` + churchColumns + `
		FROM churches c
		WHERE c.church_id = $1;
	`
	modelChurch, err := scanChurch(r.Pool.QueryRow(ctx, query, churchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find church by ID "+churchID, err)
	}

	domainChurch := mapping.ToDomainChurch(modelChurch)
	return &domainChurch, nil
}

func (r *PgxChurchRepository) UpdateChurch(ctx context.Context, church domain.Church) error {
	modelChurch := mapping.ToModelChurch(church)
	query := `
		UPDATE churches
		SET name = $2, description = $3, default_currency_code = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE church_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelChurch.ChurchID,
		modelChurch.Name,
		modelChurch.Description,
		modelChurch.DefaultCurrencyCode,
		modelChurch.IsActive,
		modelChurch.LastUpdatedAt,
		modelChurch.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update church "+modelChurch.ChurchID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("church " + modelChurch.ChurchID + " not found for update")
	}
	return nil
}

func (r *PgxChurchRepository) ListChurchesByUserID(ctx context.Context, userID string) ([]domain.Church, error) {
	query := `
		SELECT ` + churchColumns + `
		FROM churches c
		JOIN user_churches uc ON c.church_id = uc.church_id
		WHERE uc.user_id = $1 AND uc.role != $2
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query churches for user "+userID, err)
	}
	defer rows.Close()

	modelChurches := []models.Church{}
	for rows.Next() {
		m, scanErr := scanChurch(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan church row for user "+userID, scanErr)
		}
		modelChurches = append(modelChurches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating church rows for user "+userID, err)
	}

	return mapping.ToDomainChurchSlice(modelChurches), nil
}

func (r *PgxChurchRepository) AddUserToChurch(ctx context.Context, membership domain.UserChurch) error {
	query := `
		INSERT INTO user_churches (user_id, church_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, church_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.ChurchID,
		membership.Role,
		membership.JoinedAt,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in church "+membership.ChurchID, err)
	}
	return nil
}

func (r *PgxChurchRepository) FindUserChurchRole(ctx context.Context, userID, churchID string) (*domain.UserChurch, error) {
	query := `
		SELECT user_id, church_id, role, joined_at
		FROM user_churches
		WHERE user_id = $1 AND church_id = $2;
	`
	var uc domain.UserChurch
	err := r.Pool.QueryRow(ctx, query, userID, churchID).Scan(
		&uc.UserID,
		&uc.ChurchID,
		&uc.Role,
		&uc.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("church not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" church role in "+churchID, err)
	}
	return &uc, nil
}

// ListChurchUsers retrieves all memberships for a church, excluding removed users.
func (r *PgxChurchRepository) ListChurchUsers(ctx context.Context, churchID string) ([]domain.UserChurch, error) {
	query := `
		SELECT uc.user_id, u.name as user_name, uc.church_id, uc.role, uc.joined_at
		FROM user_churches uc
		JOIN users u ON uc.user_id = u.user_id
		WHERE uc.church_id = $1 AND uc.role != $2
		ORDER BY uc.joined_at DESC;
	`

	rows, err := r.Pool.Query(ctx, query, churchID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for church "+churchID, err)
	}
	defer rows.Close()

	var memberships []domain.UserChurch
	for rows.Next() {
		var uc domain.UserChurch
		err := rows.Scan(
			&uc.UserID,
			&uc.UserName,
			&uc.ChurchID,
			&uc.Role,
			&uc.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user church row", err)
		}
		memberships = append(memberships, uc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user church rows", err)
	}

	return memberships, nil
}

// UpdateUserChurchRole updates a user's role in a church
func (r *PgxChurchRepository) UpdateUserChurchRole(ctx context.Context, userID, churchID string, newRole domain.UserChurchRole) error {
	query := `
		UPDATE user_churches
		SET role = $3
		WHERE user_id = $1 AND church_id = $2;
	`

	result, err := r.Pool.Exec(ctx, query, userID, churchID, newRole)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for user "+userID+" in church "+churchID, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("church membership not found")
	}

	return nil
}
