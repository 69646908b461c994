package service

import (
	"context"
	"errors"
	"time"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

// SpotService implements promotional-spot management. The sort position
// (ordem) is unique across spots; the service enforces this itself, there is
// no database index on the field.
type SpotService struct {
	spots ports.SpotRepository
}

func NewSpotService(spots ports.SpotRepository) *SpotService {
	return &SpotService{spots: spots}
}

func (s *SpotService) ListPublic(ctx context.Context) ([]domain.Spot, error) {
	all, err := s.spots.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	visible := make([]domain.Spot, 0, len(all))
	for _, spot := range all {
		if spot.VisibleAt(now) {
			visible = append(visible, spot)
		}
	}
	return visible, nil
}

func (s *SpotService) ListAll(ctx context.Context) ([]domain.Spot, error) {
	return s.spots.List(ctx)
}

func (s *SpotService) Get(ctx context.Context, id string) (*domain.Spot, error) {
	return s.spots.FindByID(ctx, id)
}

func (s *SpotService) Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error) {
	if err := s.checkOrderFree(ctx, spot.Order, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	spot.CreatedAt = now
	spot.UpdatedAt = now
	return s.spots.Create(ctx, spot)
}

// Update replaces the mutable fields of a spot. Fields the caller left unset
// have already been backfilled from the stored spot by the handler layer.
func (s *SpotService) Update(ctx context.Context, id string, spot *domain.Spot) (*domain.Spot, error) {
	current, err := s.spots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if spot.Order != current.Order {
		if err := s.checkOrderFree(ctx, spot.Order, id); err != nil {
			return nil, err
		}
	}

	spot.ID = current.ID
	spot.CreatedAt = current.CreatedAt
	spot.UpdatedAt = time.Now().UTC()
	return s.spots.Update(ctx, spot)
}

func (s *SpotService) Delete(ctx context.Context, id string) error {
	if _, err := s.spots.FindByID(ctx, id); err != nil {
		return err
	}
	return s.spots.Delete(ctx, id)
}

func (s *SpotService) ToggleActive(ctx context.Context, id string) (*domain.Spot, error) {
	spot, err := s.spots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	spot.Active = !spot.Active
	spot.UpdatedAt = time.Now().UTC()
	return s.spots.Update(ctx, spot)
}

// Reorder applies a batch of (id, ordem) assignments. The batch is validated
// as a whole before anything is written: every referenced spot must exist, no
// two entries may target the same position, and a target position held by a
// spot outside the batch is a conflict. Spots inside the batch may swap
// positions freely.
func (s *SpotService) Reorder(ctx context.Context, orders []domain.SpotOrder) error {
	targets := make(map[int]struct{}, len(orders))
	inBatch := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if _, err := s.spots.FindByID(ctx, o.ID); err != nil {
			return err
		}
		if _, dup := targets[o.Order]; dup {
			return domain.ErrSpotOrderTaken
		}
		targets[o.Order] = struct{}{}
		inBatch[o.ID] = struct{}{}
	}

	for order := range targets {
		holder, err := s.spots.FindByOrder(ctx, order)
		if err != nil {
			if errors.Is(err, domain.ErrSpotNotFound) {
				continue
			}
			return err
		}
		if _, ok := inBatch[holder.ID]; !ok {
			return domain.ErrSpotOrderTaken
		}
	}

	for _, o := range orders {
		if err := s.spots.SetOrder(ctx, o.ID, o.Order); err != nil {
			return err
		}
	}
	return nil
}

func (s *SpotService) checkOrderFree(ctx context.Context, order int, selfID string) error {
	existing, err := s.spots.FindByOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrSpotNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.ErrSpotOrderTaken
	}
	return nil
}
