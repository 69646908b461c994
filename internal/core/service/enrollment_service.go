package service

import (
	"context"
	"time"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

// EnrollmentService implements registration-form management and the
// append-only status history.
type EnrollmentService struct {
	enrollments ports.EnrollmentRepository
}

func NewEnrollmentService(enrollments ports.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments}
}

// Create stores a new registration form and opens its status history with
// an "Em Andamento" entry.
func (s *EnrollmentService) Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	if enrollment.Type == "" {
		enrollment.Type = domain.TypeCrisma
	}
	if !enrollment.Type.Valid() {
		return nil, domain.ErrInvalidEnrollmentType
	}

	now := time.Now().UTC()
	enrollment.Status = domain.StatusInProgress
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now

	created, err := s.enrollments.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}

	_, err = s.enrollments.AppendStatus(ctx, &domain.StatusEntry{
		EnrollmentID: created.ID,
		Status:       domain.StatusInProgress,
		Note:         "Cadastro inicial",
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *EnrollmentService) List(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.enrollments.List(ctx, filter)
}

func (s *EnrollmentService) Get(ctx context.Context, id string) (*domain.Enrollment, error) {
	return s.enrollments.FindByID(ctx, id)
}

func (s *EnrollmentService) Update(ctx context.Context, id string, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	current, err := s.enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment.Type != "" && !enrollment.Type.Valid() {
		return nil, domain.ErrInvalidEnrollmentType
	}

	enrollment.ID = current.ID
	enrollment.Status = current.Status
	enrollment.CreatedAt = current.CreatedAt
	enrollment.UpdatedAt = time.Now().UTC()
	return s.enrollments.Update(ctx, enrollment)
}

func (s *EnrollmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.enrollments.FindByID(ctx, id); err != nil {
		return err
	}
	return s.enrollments.Delete(ctx, id)
}

// UpdateStatus appends a history entry and moves the enrollment to the new
// status.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, id string, status domain.EnrollmentStatus, note string) (*domain.StatusEntry, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	enrollment, err := s.enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry, err := s.enrollments.AppendStatus(ctx, &domain.StatusEntry{
		EnrollmentID: enrollment.ID,
		Status:       status,
		Note:         note,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	enrollment.Status = status
	enrollment.UpdatedAt = now
	if _, err := s.enrollments.Update(ctx, enrollment); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *EnrollmentService) StatusHistory(ctx context.Context, id string) ([]domain.StatusEntry, error) {
	if _, err := s.enrollments.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.enrollments.StatusHistory(ctx, id)
}
