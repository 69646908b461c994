package ports

import (
	"context"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// SpotRepository defines the persistence contract for promotional spots.
type SpotRepository interface {
	Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	FindByID(ctx context.Context, id string) (*domain.Spot, error)
	// FindByOrder returns the spot holding the given sort position, or
	// domain.ErrSpotNotFound when the position is free.
	FindByOrder(ctx context.Context, order int) (*domain.Spot, error)
	// List returns every spot ordered by sort position.
	List(ctx context.Context) ([]domain.Spot, error)
	Update(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	Delete(ctx context.Context, id string) error
	SetOrder(ctx context.Context, id string, order int) error
}
