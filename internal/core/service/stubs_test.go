package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// errStorage simulates an unreachable database in the stubs below.
var errStorage = errors.New("storage unavailable")

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
	fail  bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(login, password, name string, active bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	r.seq++
	u := &domain.User{
		ID:           fmt.Sprintf("u%d", r.seq),
		Login:        login,
		PasswordHash: string(hash),
		Name:         name,
		Active:       active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.fail {
		return nil, errStorage
	}
	for _, u := range r.users {
		if u.Login == user.Login {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.fail {
		return nil, errStorage
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	if r.fail {
		return nil, errStorage
	}
	for _, u := range r.users {
		if u.Login == login {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindActiveByLogin(_ context.Context, login string) (*domain.User, error) {
	if r.fail {
		return nil, errStorage
	}
	for _, u := range r.users {
		if u.Login == login && u.Active {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	if r.fail {
		return nil, errStorage
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.fail {
		return nil, errStorage
	}
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.fail {
		return errStorage
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	if r.fail {
		return 0, errStorage
	}
	return int64(len(r.users)), nil
}

type stubGroupRepo struct {
	groups map[string]*domain.AccessGroup
	seq    int
	fail   bool
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{groups: make(map[string]*domain.AccessGroup)}
}

func (r *stubGroupRepo) add(name string, active bool, perms ...domain.Permission) *domain.AccessGroup {
	r.seq++
	g := &domain.AccessGroup{
		ID:          fmt.Sprintf("g%d", r.seq),
		Name:        name,
		Permissions: perms,
		Active:      active,
	}
	r.groups[g.ID] = g
	return g
}

func (r *stubGroupRepo) Create(_ context.Context, group *domain.AccessGroup) (*domain.AccessGroup, error) {
	if r.fail {
		return nil, errStorage
	}
	for _, g := range r.groups {
		if g.Name == group.Name {
			return nil, domain.ErrGroupExists
		}
	}
	r.seq++
	clone := *group
	clone.ID = fmt.Sprintf("g%d", r.seq)
	r.groups[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGroupRepo) FindByID(_ context.Context, id string) (*domain.AccessGroup, error) {
	if r.fail {
		return nil, errStorage
	}
	g, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGroupRepo) FindByName(_ context.Context, name string) (*domain.AccessGroup, error) {
	if r.fail {
		return nil, errStorage
	}
	for _, g := range r.groups {
		if g.Name == name {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (r *stubGroupRepo) FindActiveByIDs(_ context.Context, ids []string) ([]domain.AccessGroup, error) {
	if r.fail {
		return nil, errStorage
	}
	out := make([]domain.AccessGroup, 0, len(ids))
	for _, id := range ids {
		if g, ok := r.groups[id]; ok && g.Active {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *stubGroupRepo) List(_ context.Context) ([]domain.AccessGroup, error) {
	if r.fail {
		return nil, errStorage
	}
	out := make([]domain.AccessGroup, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (r *stubGroupRepo) Update(_ context.Context, group *domain.AccessGroup) (*domain.AccessGroup, error) {
	if r.fail {
		return nil, errStorage
	}
	if _, ok := r.groups[group.ID]; !ok {
		return nil, domain.ErrGroupNotFound
	}
	clone := *group
	r.groups[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGroupRepo) Delete(_ context.Context, id string) error {
	if r.fail {
		return errStorage
	}
	if _, ok := r.groups[id]; !ok {
		return domain.ErrGroupNotFound
	}
	delete(r.groups, id)
	return nil
}

func (r *stubGroupRepo) Upsert(_ context.Context, group *domain.AccessGroup) error {
	if r.fail {
		return errStorage
	}
	for _, g := range r.groups {
		if g.Name == group.Name {
			g.Description = group.Description
			g.Permissions = group.Permissions
			return nil
		}
	}
	_, err := r.Create(context.Background(), group)
	return err
}

type stubMembershipRepo struct {
	links []domain.Membership
	fail  bool
}

func newStubMembershipRepo() *stubMembershipRepo {
	return &stubMembershipRepo{}
}

func (r *stubMembershipRepo) has(userID, groupID string) bool {
	for _, m := range r.links {
		if m.UserID == userID && m.GroupID == groupID {
			return true
		}
	}
	return false
}

func (r *stubMembershipRepo) Add(_ context.Context, userID, groupID string) error {
	if r.fail {
		return errStorage
	}
	if r.has(userID, groupID) {
		return nil
	}
	r.links = append(r.links, domain.Membership{UserID: userID, GroupID: groupID, CreatedAt: time.Now()})
	return nil
}

func (r *stubMembershipRepo) GroupIDsForUser(_ context.Context, userID string) ([]string, error) {
	if r.fail {
		return nil, errStorage
	}
	var out []string
	for _, m := range r.links {
		if m.UserID == userID {
			out = append(out, m.GroupID)
		}
	}
	return out, nil
}

func (r *stubMembershipRepo) RemoveByUser(_ context.Context, userID string) error {
	if r.fail {
		return errStorage
	}
	kept := r.links[:0]
	for _, m := range r.links {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	r.links = kept
	return nil
}

func (r *stubMembershipRepo) RemoveByGroup(_ context.Context, groupID string) error {
	if r.fail {
		return errStorage
	}
	kept := r.links[:0]
	for _, m := range r.links {
		if m.GroupID != groupID {
			kept = append(kept, m)
		}
	}
	r.links = kept
	return nil
}
