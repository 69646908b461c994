package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

// GroupService implements access-group management. Permission tokens are
// validated against the registry at create/update time so a typo cannot
// enter the database.
type GroupService struct {
	groups      ports.GroupRepository
	memberships ports.MembershipRepository
	log         zerolog.Logger
}

func NewGroupService(groups ports.GroupRepository, memberships ports.MembershipRepository, log zerolog.Logger) *GroupService {
	return &GroupService{groups: groups, memberships: memberships, log: log}
}

func validatePermissions(perms []domain.Permission) error {
	for _, p := range perms {
		if !p.Valid() {
			return domain.ErrUnknownPermission
		}
	}
	return nil
}

func (s *GroupService) Create(ctx context.Context, name, description string, perms []domain.Permission) (*domain.AccessGroup, error) {
	if err := validatePermissions(perms); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.groups.Create(ctx, &domain.AccessGroup{
		Name:        name,
		Description: description,
		Permissions: perms,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *GroupService) List(ctx context.Context) ([]domain.AccessGroup, error) {
	return s.groups.List(ctx)
}

func (s *GroupService) Get(ctx context.Context, id string) (*domain.AccessGroup, error) {
	return s.groups.FindByID(ctx, id)
}

func (s *GroupService) Update(ctx context.Context, id string, name, description *string, perms []domain.Permission, active *bool) (*domain.AccessGroup, error) {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		group.Name = *name
	}
	if description != nil {
		group.Description = *description
	}
	if perms != nil {
		if err := validatePermissions(perms); err != nil {
			return nil, err
		}
		group.Permissions = perms
	}
	if active != nil {
		group.Active = *active
	}

	group.UpdatedAt = time.Now().UTC()
	return s.groups.Update(ctx, group)
}

// Delete removes the group and cascades its memberships.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if _, err := s.groups.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.memberships.RemoveByGroup(ctx, id); err != nil {
		s.log.Error().Err(err).Str("group_id", id).Msg("membership cascade failed")
	}
	return nil
}

func (s *GroupService) AssignUser(ctx context.Context, userID, groupID string) error {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return err
	}
	return s.memberships.Add(ctx, userID, groupID)
}
