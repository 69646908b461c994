package ports

import (
	"context"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// GroupRepository defines the persistence contract for access groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.AccessGroup) (*domain.AccessGroup, error)
	FindByID(ctx context.Context, id string) (*domain.AccessGroup, error)
	FindByName(ctx context.Context, name string) (*domain.AccessGroup, error)
	// FindActiveByIDs returns only the active groups among ids.
	FindActiveByIDs(ctx context.Context, ids []string) ([]domain.AccessGroup, error)
	List(ctx context.Context) ([]domain.AccessGroup, error)
	Update(ctx context.Context, group *domain.AccessGroup) (*domain.AccessGroup, error)
	Delete(ctx context.Context, id string) error
	// Upsert inserts the group or re-syncs description/permissions of an
	// existing group with the same name. Used by the startup seed.
	Upsert(ctx context.Context, group *domain.AccessGroup) error
}

// MembershipRepository links users to access groups.
type MembershipRepository interface {
	// Add is idempotent: linking an already linked (user, group) pair is
	// not an error.
	Add(ctx context.Context, userID, groupID string) error
	GroupIDsForUser(ctx context.Context, userID string) ([]string, error)
	RemoveByUser(ctx context.Context, userID string) error
	RemoveByGroup(ctx context.Context, groupID string) error
}
