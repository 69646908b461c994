package ports

import (
	"context"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// SpotService implements promotional-spot management.
type SpotService interface {
	// ListPublic returns active spots inside their visibility window,
	// ordered by sort position.
	ListPublic(ctx context.Context) ([]domain.Spot, error)
	ListAll(ctx context.Context) ([]domain.Spot, error)
	Get(ctx context.Context, id string) (*domain.Spot, error)
	Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	Update(ctx context.Context, id string, spot *domain.Spot) (*domain.Spot, error)
	Delete(ctx context.Context, id string) error
	// ToggleActive flips the active flag and returns the new state.
	ToggleActive(ctx context.Context, id string) (*domain.Spot, error)
	Reorder(ctx context.Context, orders []domain.SpotOrder) error
}

// EnrollmentService implements registration-form management.
type EnrollmentService interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error)
	List(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error)
	Get(ctx context.Context, id string) (*domain.Enrollment, error)
	Update(ctx context.Context, id string, enrollment *domain.Enrollment) (*domain.Enrollment, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status domain.EnrollmentStatus, note string) (*domain.StatusEntry, error)
	StatusHistory(ctx context.Context, id string) ([]domain.StatusEntry, error)
}
