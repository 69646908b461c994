package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

func newResolver(users *stubUserRepo, groups *stubGroupRepo, memberships *stubMembershipRepo) *PermissionService {
	return NewPermissionService(users, groups, memberships, zerolog.Nop())
}

func TestPermissionService_Resolve_UnionAcrossGroups(t *testing.T) {
	users := newStubUserRepo()
	groups := newStubGroupRepo()
	memberships := newStubMembershipRepo()

	u := users.add("maria", "x", "Maria", true)
	g1 := groups.add("operadores", true, domain.PermEnrollmentsList, domain.PermEnrollmentsEdit)
	g2 := groups.add("cadastro", true, domain.PermEnrollmentsEdit, domain.PermUsersList)
	_ = memberships.Add(context.Background(), u.ID, g1.ID)
	_ = memberships.Add(context.Background(), u.ID, g2.ID)

	set := newResolver(users, groups, memberships).Resolve(context.Background(), u.ID)
	if len(set) != 3 {
		t.Fatalf("expected 3 distinct permissions, got %d: %v", len(set), set.Sorted())
	}
	for _, p := range []domain.Permission{domain.PermEnrollmentsList, domain.PermEnrollmentsEdit, domain.PermUsersList} {
		if !set.ContainsAny(p) {
			t.Fatalf("missing %s in %v", p, set.Sorted())
		}
	}
}

func TestPermissionService_Resolve_InactiveUser(t *testing.T) {
	users := newStubUserRepo()
	groups := newStubGroupRepo()
	memberships := newStubMembershipRepo()

	u := users.add("jose", "x", "José", false)
	g := groups.add("admin", true, domain.PermAdmin)
	_ = memberships.Add(context.Background(), u.ID, g.ID)

	if set := newResolver(users, groups, memberships).Resolve(context.Background(), u.ID); len(set) != 0 {
		t.Fatalf("inactive user must resolve to empty set, got %v", set.Sorted())
	}
}

func TestPermissionService_Resolve_UnknownUser(t *testing.T) {
	resolver := newResolver(newStubUserRepo(), newStubGroupRepo(), newStubMembershipRepo())

	if set := resolver.Resolve(context.Background(), "nope"); len(set) != 0 {
		t.Fatalf("unknown user must resolve to empty set, got %v", set.Sorted())
	}
}

func TestPermissionService_Resolve_NoGroups(t *testing.T) {
	users := newStubUserRepo()
	u := users.add("maria", "x", "Maria", true)

	if set := newResolver(users, newStubGroupRepo(), newStubMembershipRepo()).Resolve(context.Background(), u.ID); len(set) != 0 {
		t.Fatalf("user without groups must resolve to empty set, got %v", set.Sorted())
	}
}

// A deactivated group stops contributing immediately, with the membership
// still linked.
func TestPermissionService_Resolve_InactiveGroupExcluded(t *testing.T) {
	users := newStubUserRepo()
	groups := newStubGroupRepo()
	memberships := newStubMembershipRepo()

	u := users.add("maria", "x", "Maria", true)
	active := groups.add("consulta", true, domain.PermEnrollmentsList)
	disabled := groups.add("admin", true, domain.PermAdmin)
	_ = memberships.Add(context.Background(), u.ID, active.ID)
	_ = memberships.Add(context.Background(), u.ID, disabled.ID)

	resolver := newResolver(users, groups, memberships)

	before := resolver.Resolve(context.Background(), u.ID)
	if !before.ContainsAny(domain.PermAdmin) {
		t.Fatalf("expected admin before deactivation, got %v", before.Sorted())
	}

	groups.groups[disabled.ID].Active = false

	after := resolver.Resolve(context.Background(), u.ID)
	if after.ContainsAny(domain.PermAdmin) {
		t.Fatalf("deactivated group still granting: %v", after.Sorted())
	}
	if !after.ContainsAny(domain.PermEnrollmentsList) {
		t.Fatalf("active group lost: %v", after.Sorted())
	}
}

// Storage failures resolve to the empty set: the gate fails closed.
func TestPermissionService_Resolve_StorageFailure(t *testing.T) {
	users := newStubUserRepo()
	groups := newStubGroupRepo()
	memberships := newStubMembershipRepo()

	u := users.add("maria", "x", "Maria", true)
	g := groups.add("admin", true, domain.PermAdmin)
	_ = memberships.Add(context.Background(), u.ID, g.ID)

	memberships.fail = true

	if set := newResolver(users, groups, memberships).Resolve(context.Background(), u.ID); len(set) != 0 {
		t.Fatalf("storage failure must resolve to empty set, got %v", set.Sorted())
	}
}
