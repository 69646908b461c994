package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

type stubSpotRepo struct {
	spots map[string]*domain.Spot
	seq   int
}

func newStubSpotRepo() *stubSpotRepo {
	return &stubSpotRepo{spots: make(map[string]*domain.Spot)}
}

func (r *stubSpotRepo) add(title string, order int, active bool) *domain.Spot {
	r.seq++
	s := &domain.Spot{
		ID:     fmt.Sprintf("s%d", r.seq),
		Title:  title,
		Order:  order,
		Active: active,
	}
	r.spots[s.ID] = s
	return s
}

func (r *stubSpotRepo) Create(_ context.Context, spot *domain.Spot) (*domain.Spot, error) {
	r.seq++
	clone := *spot
	clone.ID = fmt.Sprintf("s%d", r.seq)
	r.spots[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSpotRepo) FindByID(_ context.Context, id string) (*domain.Spot, error) {
	s, ok := r.spots[id]
	if !ok {
		return nil, domain.ErrSpotNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSpotRepo) FindByOrder(_ context.Context, order int) (*domain.Spot, error) {
	for _, s := range r.spots {
		if s.Order == order {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSpotNotFound
}

func (r *stubSpotRepo) List(_ context.Context) ([]domain.Spot, error) {
	out := make([]domain.Spot, 0, len(r.spots))
	for _, s := range r.spots {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *stubSpotRepo) Update(_ context.Context, spot *domain.Spot) (*domain.Spot, error) {
	if _, ok := r.spots[spot.ID]; !ok {
		return nil, domain.ErrSpotNotFound
	}
	clone := *spot
	r.spots[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSpotRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.spots[id]; !ok {
		return domain.ErrSpotNotFound
	}
	delete(r.spots, id)
	return nil
}

func (r *stubSpotRepo) SetOrder(_ context.Context, id string, order int) error {
	s, ok := r.spots[id]
	if !ok {
		return domain.ErrSpotNotFound
	}
	s.Order = order
	return nil
}

func TestSpotService_ListPublic_FiltersVisibility(t *testing.T) {
	repo := newStubSpotRepo()
	repo.add("visível", 1, true)
	repo.add("inativo", 2, false)

	past := time.Now().Add(-time.Hour)
	expired := repo.add("expirado", 3, true)
	expired.EndsAt = &past

	future := time.Now().Add(time.Hour)
	scheduled := repo.add("agendado", 4, true)
	scheduled.StartsAt = &future

	svc := NewSpotService(repo)

	visible, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(visible) != 1 || visible[0].Title != "visível" {
		t.Fatalf("unexpected public listing: %+v", visible)
	}
}

func TestSpotService_Create_OrderTaken(t *testing.T) {
	repo := newStubSpotRepo()
	repo.add("primeiro", 1, true)
	svc := NewSpotService(repo)

	_, err := svc.Create(context.Background(), &domain.Spot{Title: "segundo", Order: 1})
	if !errors.Is(err, domain.ErrSpotOrderTaken) {
		t.Fatalf("expected ErrSpotOrderTaken, got %v", err)
	}
}

func TestSpotService_Update_KeepingOwnOrder(t *testing.T) {
	repo := newStubSpotRepo()
	s := repo.add("spot", 1, true)
	svc := NewSpotService(repo)

	updated, err := svc.Update(context.Background(), s.ID, &domain.Spot{Title: "renomeado", Order: 1})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "renomeado" || updated.Order != 1 {
		t.Fatalf("unexpected spot: %+v", updated)
	}
}

func TestSpotService_Update_OrderConflict(t *testing.T) {
	repo := newStubSpotRepo()
	repo.add("primeiro", 1, true)
	s := repo.add("segundo", 2, true)
	svc := NewSpotService(repo)

	if _, err := svc.Update(context.Background(), s.ID, &domain.Spot{Title: "segundo", Order: 1}); !errors.Is(err, domain.ErrSpotOrderTaken) {
		t.Fatalf("expected ErrSpotOrderTaken, got %v", err)
	}
}

func TestSpotService_ToggleActive(t *testing.T) {
	repo := newStubSpotRepo()
	s := repo.add("spot", 1, true)
	svc := NewSpotService(repo)

	toggled, err := svc.ToggleActive(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.Active {
		t.Fatalf("expected spot deactivated")
	}

	toggled, err = svc.ToggleActive(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !toggled.Active {
		t.Fatalf("expected spot reactivated")
	}
}

// Swapping two positions in one batch must work: there is no point-in-time
// where the batch is half applied from the caller's view.
func TestSpotService_Reorder_Swap(t *testing.T) {
	repo := newStubSpotRepo()
	a := repo.add("a", 1, true)
	b := repo.add("b", 2, true)
	svc := NewSpotService(repo)

	err := svc.Reorder(context.Background(), []domain.SpotOrder{
		{ID: a.ID, Order: 2},
		{ID: b.ID, Order: 1},
	})
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if repo.spots[a.ID].Order != 2 || repo.spots[b.ID].Order != 1 {
		t.Fatalf("swap not applied: a=%d b=%d", repo.spots[a.ID].Order, repo.spots[b.ID].Order)
	}
}

func TestSpotService_Reorder_UnknownIDRejectsBatch(t *testing.T) {
	repo := newStubSpotRepo()
	a := repo.add("a", 1, true)
	svc := NewSpotService(repo)

	err := svc.Reorder(context.Background(), []domain.SpotOrder{
		{ID: "nope", Order: 5},
		{ID: a.ID, Order: 9},
	})
	if !errors.Is(err, domain.ErrSpotNotFound) {
		t.Fatalf("expected ErrSpotNotFound, got %v", err)
	}
	if repo.spots[a.ID].Order != 1 {
		t.Fatalf("batch partially applied: %d", repo.spots[a.ID].Order)
	}
}

// Moving one spot onto a position held by a spot outside the batch would
// leave two spots sharing an ordem; the batch must be rejected untouched.
func TestSpotService_Reorder_OrderHeldOutsideBatch(t *testing.T) {
	repo := newStubSpotRepo()
	a := repo.add("a", 1, true)
	b := repo.add("b", 2, true)
	svc := NewSpotService(repo)

	err := svc.Reorder(context.Background(), []domain.SpotOrder{
		{ID: a.ID, Order: 2},
	})
	if !errors.Is(err, domain.ErrSpotOrderTaken) {
		t.Fatalf("expected ErrSpotOrderTaken, got %v", err)
	}
	if repo.spots[a.ID].Order != 1 || repo.spots[b.ID].Order != 2 {
		t.Fatalf("batch applied despite conflict: a=%d b=%d", repo.spots[a.ID].Order, repo.spots[b.ID].Order)
	}
}

func TestSpotService_Reorder_DuplicateTargetRejected(t *testing.T) {
	repo := newStubSpotRepo()
	a := repo.add("a", 1, true)
	b := repo.add("b", 2, true)
	svc := NewSpotService(repo)

	err := svc.Reorder(context.Background(), []domain.SpotOrder{
		{ID: a.ID, Order: 3},
		{ID: b.ID, Order: 3},
	})
	if !errors.Is(err, domain.ErrSpotOrderTaken) {
		t.Fatalf("expected ErrSpotOrderTaken, got %v", err)
	}
	if repo.spots[a.ID].Order != 1 || repo.spots[b.ID].Order != 2 {
		t.Fatalf("batch applied despite conflict: a=%d b=%d", repo.spots[a.ID].Order, repo.spots[b.ID].Order)
	}
}
