package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

// UserService implements account management on top of the user, group and
// membership repositories.
type UserService struct {
	users       ports.UserRepository
	groups      ports.GroupRepository
	memberships ports.MembershipRepository
	log         zerolog.Logger
}

func NewUserService(users ports.UserRepository, groups ports.GroupRepository, memberships ports.MembershipRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, groups: groups, memberships: memberships, log: log}
}

// Create registers a new account and auto-enrolls it into the default
// low-privilege group.
func (s *UserService) Create(ctx context.Context, login, password, name, email string) (*domain.User, error) {
	if login == "" || password == "" || name == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Login:        login,
		PasswordHash: string(hash),
		Name:         name,
		Email:        email,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if group, err := s.groups.FindByName(ctx, domain.DefaultGroupName); err == nil {
		if err := s.memberships.Add(ctx, created.ID, group.ID); err != nil {
			s.log.Error().Err(err).Str("user_id", created.ID).Msg("default group assignment failed")
		}
	} else {
		s.log.Error().Err(err).Str("group", domain.DefaultGroupName).Msg("default group missing")
	}

	return created, nil
}

// SignupOpen reports whether account creation is allowed without a token.
// The rule re-counts on every call so the window closes the moment a second
// distinct account exists; on any storage error it answers false.
func (s *UserService) SignupOpen(ctx context.Context) bool {
	count, err := s.users.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("signup-open check failed")
		return false
	}
	if count == 0 {
		return true
	}
	if count != 1 {
		return false
	}
	_, err = s.users.FindByLogin(ctx, domain.DefaultAdminLogin)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Msg("signup-open check failed")
		}
		return false
	}
	return true
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies a partial update. Renaming to an already taken login fails
// with domain.ErrUserExists; an empty update fails with ErrNothingToUpdate.
func (s *UserService) Update(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if update.Login != nil && *update.Login != user.Login {
		existing, err := s.users.FindByLogin(ctx, *update.Login)
		if err == nil && existing.ID != id {
			return nil, domain.ErrUserExists
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Login = *update.Login
		changed = true
	}
	if update.Password != nil && strings.TrimSpace(*update.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		changed = true
	}
	if update.Name != nil {
		user.Name = *update.Name
		changed = true
	}
	if update.Email != nil {
		user.Email = *update.Email
		changed = true
	}
	if update.Active != nil {
		user.Active = *update.Active
		changed = true
	}

	if !changed {
		return nil, domain.ErrNothingToUpdate
	}

	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

// Delete removes a user and cascades its memberships. Deleting the calling
// account is rejected.
func (s *UserService) Delete(ctx context.Context, id, callerID string) (*domain.User, error) {
	if id == callerID {
		return nil, domain.ErrSelfDelete
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := s.memberships.RemoveByUser(ctx, id); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("membership cascade failed")
	}
	return user, nil
}
