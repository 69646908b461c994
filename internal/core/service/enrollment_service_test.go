package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

type stubEnrollmentRepo struct {
	enrollments map[string]*domain.Enrollment
	history     []domain.StatusEntry
	seq         int
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{enrollments: make(map[string]*domain.Enrollment)}
}

func (r *stubEnrollmentRepo) Create(_ context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	r.seq++
	clone := *enrollment
	clone.ID = fmt.Sprintf("i%d", r.seq)
	r.enrollments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEnrollmentRepo) FindByID(_ context.Context, id string) (*domain.Enrollment, error) {
	e, ok := r.enrollments[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEnrollmentRepo) List(_ context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	for _, e := range r.enrollments {
		if filter.Email != "" && !strings.Contains(e.Email, filter.Email) {
			continue
		}
		if filter.FullName != "" && !strings.Contains(e.FullName, filter.FullName) {
			continue
		}
		if filter.Baptized != nil && e.Baptized != *filter.Baptized {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEnrollmentRepo) Update(_ context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	if _, ok := r.enrollments[enrollment.ID]; !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	clone := *enrollment
	r.enrollments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEnrollmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.enrollments[id]; !ok {
		return domain.ErrEnrollmentNotFound
	}
	delete(r.enrollments, id)
	return nil
}

func (r *stubEnrollmentRepo) AppendStatus(_ context.Context, entry *domain.StatusEntry) (*domain.StatusEntry, error) {
	r.seq++
	clone := *entry
	clone.ID = fmt.Sprintf("h%d", r.seq)
	r.history = append(r.history, clone)
	out := clone
	return &out, nil
}

func (r *stubEnrollmentRepo) StatusHistory(_ context.Context, enrollmentID string) ([]domain.StatusEntry, error) {
	var out []domain.StatusEntry
	for _, e := range r.history {
		if e.EnrollmentID == enrollmentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestEnrollmentService_Create_OpensHistory(t *testing.T) {
	repo := newStubEnrollmentRepo()
	svc := NewEnrollmentService(repo)

	created, err := svc.Create(context.Background(), &domain.Enrollment{
		Email:     "maria@example.com",
		FullName:  "Maria Silva",
		BirthDate: "2008-03-12",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Type != domain.TypeCrisma {
		t.Fatalf("expected default type crisma, got %s", created.Type)
	}
	if created.Status != domain.StatusInProgress {
		t.Fatalf("expected initial status %q, got %q", domain.StatusInProgress, created.Status)
	}

	history, err := svc.StatusHistory(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 || history[0].Status != domain.StatusInProgress {
		t.Fatalf("expected one initial history entry, got %+v", history)
	}
}

func TestEnrollmentService_Create_UnknownType(t *testing.T) {
	svc := NewEnrollmentService(newStubEnrollmentRepo())

	_, err := svc.Create(context.Background(), &domain.Enrollment{
		Type:     "eucaristia",
		Email:    "x@example.com",
		FullName: "X",
	})
	if !errors.Is(err, domain.ErrInvalidEnrollmentType) {
		t.Fatalf("expected ErrInvalidEnrollmentType, got %v", err)
	}
}

func TestEnrollmentService_UpdateStatus_AppendsAndMoves(t *testing.T) {
	repo := newStubEnrollmentRepo()
	svc := NewEnrollmentService(repo)

	created, err := svc.Create(context.Background(), &domain.Enrollment{
		Email:    "maria@example.com",
		FullName: "Maria Silva",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	entry, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusCompleted, "Crismada em novembro")
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if entry.Status != domain.StatusCompleted || entry.Note != "Crismada em novembro" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Status != domain.StatusCompleted {
		t.Fatalf("enrollment not moved, still %q", stored.Status)
	}

	history, _ := svc.StatusHistory(context.Background(), created.ID)
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
}

func TestEnrollmentService_UpdateStatus_Invalid(t *testing.T) {
	repo := newStubEnrollmentRepo()
	svc := NewEnrollmentService(repo)

	created, _ := svc.Create(context.Background(), &domain.Enrollment{Email: "x@example.com", FullName: "X"})

	if _, err := svc.UpdateStatus(context.Background(), created.ID, "Pausado", ""); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestEnrollmentService_Update_PreservesStatus(t *testing.T) {
	repo := newStubEnrollmentRepo()
	svc := NewEnrollmentService(repo)

	created, _ := svc.Create(context.Background(), &domain.Enrollment{Email: "x@example.com", FullName: "X"})
	if _, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusDroppedOut, ""); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, &domain.Enrollment{
		Type:     domain.TypeCrisma,
		Email:    "novo@example.com",
		FullName: "X",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusDroppedOut {
		t.Fatalf("form update must not reset status, got %q", updated.Status)
	}
	if updated.Email != "novo@example.com" {
		t.Fatalf("form fields not applied: %+v", updated)
	}
}

func TestEnrollmentService_Delete_Unknown(t *testing.T) {
	svc := NewEnrollmentService(newStubEnrollmentRepo())

	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, domain.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound, got %v", err)
	}
}
