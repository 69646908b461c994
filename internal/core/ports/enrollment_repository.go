package ports

import (
	"context"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// EnrollmentRepository defines the persistence contract for registration
// forms and their append-only status history.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error)
	FindByID(ctx context.Context, id string) (*domain.Enrollment, error)
	List(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error)
	Update(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error)
	Delete(ctx context.Context, id string) error

	AppendStatus(ctx context.Context, entry *domain.StatusEntry) (*domain.StatusEntry, error)
	StatusHistory(ctx context.Context, enrollmentID string) ([]domain.StatusEntry, error)
}
