package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the role granted to a person in their default organization.
const RoleAdmin = "admin"

// OrganizationStore defines persistence operations for organizations.
type OrganizationStore interface {
	Create(ctx context.Context, org Organization) (Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (Organization, error)
}

// PersonOrganizationRoleStore defines persistence operations for
// organization memberships.
type PersonOrganizationRoleStore interface {
	Create(ctx context.Context, role PersonOrganizationRole) (PersonOrganizationRole, error)
	GetByPersonID(ctx context.Context, personID uuid.UUID) ([]PersonOrganizationRole, error)
}

// Organization is a tenant entity. A default organization is provisioned
// for every new person at signup.
type Organization struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PersonOrganizationRole is a membership edge between a person and an
// organization.
type PersonOrganizationRole struct {
	ID             uuid.UUID
	PersonID       uuid.UUID
	OrganizationID uuid.UUID
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
