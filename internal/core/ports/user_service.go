package ports

import (
	"context"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// UserService implements account management.
type UserService interface {
	// Create registers an account and enrolls it in the default group.
	Create(ctx context.Context, login, password, name, email string) (*domain.User, error)
	// SignupOpen reports whether unauthenticated account creation is
	// currently allowed: the store is empty or holds only the default
	// admin account. Recomputed on every call, never cached.
	SignupOpen(ctx context.Context) bool
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	// Delete removes the user and its memberships. callerID guards
	// against self-deletion.
	Delete(ctx context.Context, id, callerID string) (*domain.User, error)
}

// GroupService implements access-group management.
type GroupService interface {
	Create(ctx context.Context, name, description string, perms []domain.Permission) (*domain.AccessGroup, error)
	List(ctx context.Context) ([]domain.AccessGroup, error)
	Get(ctx context.Context, id string) (*domain.AccessGroup, error)
	Update(ctx context.Context, id string, name, description *string, perms []domain.Permission, active *bool) (*domain.AccessGroup, error)
	Delete(ctx context.Context, id string) error
	// AssignUser links a user to a group (idempotent).
	AssignUser(ctx context.Context, userID, groupID string) error
}
