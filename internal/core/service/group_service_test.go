package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

func newGroupService(groups *stubGroupRepo, memberships *stubMembershipRepo) *GroupService {
	return NewGroupService(groups, memberships, zerolog.Nop())
}

func TestGroupService_Create_Success(t *testing.T) {
	svc := newGroupService(newStubGroupRepo(), newStubMembershipRepo())

	group, err := svc.Create(context.Background(), "catequistas", "Equipe de catequese",
		[]domain.Permission{domain.PermEnrollmentsList, domain.PermEnrollmentsEdit})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !group.Active {
		t.Fatalf("new groups must start active")
	}
}

func TestGroupService_Create_UnknownPermission(t *testing.T) {
	svc := newGroupService(newStubGroupRepo(), newStubMembershipRepo())

	_, err := svc.Create(context.Background(), "catequistas", "",
		[]domain.Permission{domain.PermEnrollmentsList, "inscricoes.digitar"})
	if !errors.Is(err, domain.ErrUnknownPermission) {
		t.Fatalf("expected ErrUnknownPermission, got %v", err)
	}
}

func TestGroupService_Create_DuplicateName(t *testing.T) {
	groups := newStubGroupRepo()
	groups.add("consulta", true)
	svc := newGroupService(groups, newStubMembershipRepo())

	if _, err := svc.Create(context.Background(), "consulta", "", nil); !errors.Is(err, domain.ErrGroupExists) {
		t.Fatalf("expected ErrGroupExists, got %v", err)
	}
}

func TestGroupService_Update_ValidatesPermissions(t *testing.T) {
	groups := newStubGroupRepo()
	g := groups.add("consulta", true, domain.PermEnrollmentsList)
	svc := newGroupService(groups, newStubMembershipRepo())

	_, err := svc.Update(context.Background(), g.ID, nil, nil, []domain.Permission{"typo.listar"}, nil)
	if !errors.Is(err, domain.ErrUnknownPermission) {
		t.Fatalf("expected ErrUnknownPermission, got %v", err)
	}

	stored, _ := groups.FindByID(context.Background(), g.ID)
	if len(stored.Permissions) != 1 || stored.Permissions[0] != domain.PermEnrollmentsList {
		t.Fatalf("rejected update must not change stored permissions: %v", stored.Permissions)
	}
}

func TestGroupService_Delete_CascadesMemberships(t *testing.T) {
	groups := newStubGroupRepo()
	memberships := newStubMembershipRepo()
	g := groups.add("consulta", true)
	_ = memberships.Add(context.Background(), "u1", g.ID)
	_ = memberships.Add(context.Background(), "u2", g.ID)

	svc := newGroupService(groups, memberships)

	if err := svc.Delete(context.Background(), g.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if memberships.has("u1", g.ID) || memberships.has("u2", g.ID) {
		t.Fatalf("expected membership cascade on group delete")
	}
}

func TestGroupService_AssignUser_UnknownGroup(t *testing.T) {
	svc := newGroupService(newStubGroupRepo(), newStubMembershipRepo())

	if err := svc.AssignUser(context.Background(), "u1", "nope"); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestGroupService_AssignUser_Idempotent(t *testing.T) {
	groups := newStubGroupRepo()
	memberships := newStubMembershipRepo()
	g := groups.add("consulta", true)

	svc := newGroupService(groups, memberships)

	if err := svc.AssignUser(context.Background(), "u1", g.ID); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	if err := svc.AssignUser(context.Background(), "u1", g.ID); err != nil {
		t.Fatalf("second assign failed: %v", err)
	}
	if len(memberships.links) != 1 {
		t.Fatalf("expected a single membership, got %d", len(memberships.links))
	}
}
