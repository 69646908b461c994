package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

// PermissionService resolves the live permission set of a user: the distinct
// union of permissions across all active groups of an active user. There is
// no cache; a group or user deactivation is visible on the very next call.
type PermissionService struct {
	users       ports.UserRepository
	groups      ports.GroupRepository
	memberships ports.MembershipRepository
	log         zerolog.Logger
}

func NewPermissionService(users ports.UserRepository, groups ports.GroupRepository, memberships ports.MembershipRepository, log zerolog.Logger) *PermissionService {
	return &PermissionService{users: users, groups: groups, memberships: memberships, log: log}
}

// Resolve returns the user's current permission set. Inactive or unknown
// users resolve to the empty set. A data-layer failure also resolves to the
// empty set with the error kept in logs: the authorization gate must fail
// closed, never open.
func (s *PermissionService) Resolve(ctx context.Context, userID string) domain.PermissionSet {
	set := make(domain.PermissionSet)

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err != domain.ErrUserNotFound {
			s.log.Error().Err(err).Str("user_id", userID).Msg("permission resolution: user lookup failed")
		}
		return set
	}
	if !user.Active {
		return set
	}

	groupIDs, err := s.memberships.GroupIDsForUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("permission resolution: membership lookup failed")
		return set
	}
	if len(groupIDs) == 0 {
		return set
	}

	groups, err := s.groups.FindActiveByIDs(ctx, groupIDs)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("permission resolution: group lookup failed")
		return set
	}

	for _, g := range groups {
		for _, p := range g.Permissions {
			set[p] = struct{}{}
		}
	}
	return set
}
