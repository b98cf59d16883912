package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.OrganizationStore = (*OrganizationRepository)(nil)

type OrganizationRepository struct {
	db *Connection
}

func NewOrganizationRepository(db *Connection) *OrganizationRepository {
	return &OrganizationRepository{
		db: db,
	}
}

func (r *OrganizationRepository) Create(ctx context.Context, org model.Organization) (model.Organization, error) {
	query := `INSERT INTO organizations (id, name, created_at, updated_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, name, created_at, updated_at`

	var saved model.Organization
	err := r.db.QueryRow(ctx, query, org.ID, org.Name, org.CreatedAt, org.UpdatedAt).Scan(
		&saved.ID, &saved.Name, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Organization{}, fmt.Errorf("failed to create organization: %w", err)
	}

	return saved, nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Organization, error) {
	var org model.Organization
	query := `SELECT id, name, created_at, updated_at FROM organizations WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Organization{}, model.ErrNotFound
		}
		return model.Organization{}, fmt.Errorf("failed to get organization by id: %w", err)
	}

	return org, nil
}

var _ model.PersonOrganizationRoleStore = (*PersonOrganizationRoleRepository)(nil)

type PersonOrganizationRoleRepository struct {
	db *Connection
}

func NewPersonOrganizationRoleRepository(db *Connection) *PersonOrganizationRoleRepository {
	return &PersonOrganizationRoleRepository{
		db: db,
	}
}

func (r *PersonOrganizationRoleRepository) Create(ctx context.Context, role model.PersonOrganizationRole) (model.PersonOrganizationRole, error) {
	query := `INSERT INTO person_organization_roles (id, person_id, organization_id, role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, person_id, organization_id, role, created_at, updated_at`

	var saved model.PersonOrganizationRole
	err := r.db.QueryRow(ctx, query,
		role.ID, role.PersonID, role.OrganizationID, role.Role, role.CreatedAt, role.UpdatedAt,
	).Scan(
		&saved.ID, &saved.PersonID, &saved.OrganizationID, &saved.Role,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.PersonOrganizationRole{}, fmt.Errorf("failed to create organization role: %w", err)
	}

	return saved, nil
}

func (r *PersonOrganizationRoleRepository) GetByPersonID(ctx context.Context, personID uuid.UUID) ([]model.PersonOrganizationRole, error) {
	query := `SELECT id, person_id, organization_id, role, created_at, updated_at
			  FROM person_organization_roles WHERE person_id = $1`

	rows, err := r.db.Query(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization roles: %w", err)
	}
	defer rows.Close()

	var roles []model.PersonOrganizationRole
	for rows.Next() {
		var role model.PersonOrganizationRole
		if err := rows.Scan(&role.ID, &role.PersonID, &role.OrganizationID, &role.Role, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organization roles: %w", err)
	}

	return roles, nil
}
