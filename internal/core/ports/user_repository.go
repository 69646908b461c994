package ports

import (
	"context"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByLogin matches regardless of the active flag (login names are
	// unique across active and inactive accounts).
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	// FindActiveByLogin matches only active accounts.
	FindActiveByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// UserUpdate carries the optional fields of a partial user update.
// Nil pointers mean "leave unchanged".
type UserUpdate struct {
	Login    *string
	Password *string
	Name     *string
	Email    *string
	Active   *bool
}
