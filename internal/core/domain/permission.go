package domain

import "sort"

// Permission names one allowed action on one resource, e.g. "usuarios.criar".
type Permission string

const (
	PermAdmin Permission = "admin"

	PermUsersCreate Permission = "usuarios.criar"
	PermUsersList   Permission = "usuarios.listar"
	PermUsersEdit   Permission = "usuarios.editar"
	PermUsersDelete Permission = "usuarios.deletar"

	PermEnrollmentsCreate Permission = "inscricoes.criar"
	PermEnrollmentsList   Permission = "inscricoes.listar"
	PermEnrollmentsEdit   Permission = "inscricoes.editar"
	PermEnrollmentsDelete Permission = "inscricoes.deletar"

	PermGroupsCreate Permission = "grupos.criar"
	PermGroupsList   Permission = "grupos.listar"
	PermGroupsEdit   Permission = "grupos.editar"
	PermGroupsDelete Permission = "grupos.deletar"

	PermSpotsCreate Permission = "spots.criar"
	PermSpotsList   Permission = "spots.listar"
	PermSpotsEdit   Permission = "spots.editar"
	PermSpotsDelete Permission = "spots.deletar"

	PermSystemConfigure Permission = "sistema.configurar"
)

// KnownPermissions is the closed registry of valid permission tokens.
// Group edits validate against it so a typo cannot silently grant nothing.
var KnownPermissions = map[Permission]struct{}{
	PermAdmin:             {},
	PermUsersCreate:       {},
	PermUsersList:         {},
	PermUsersEdit:         {},
	PermUsersDelete:       {},
	PermEnrollmentsCreate: {},
	PermEnrollmentsList:   {},
	PermEnrollmentsEdit:   {},
	PermEnrollmentsDelete: {},
	PermGroupsCreate:      {},
	PermGroupsList:        {},
	PermGroupsEdit:        {},
	PermGroupsDelete:      {},
	PermSpotsCreate:       {},
	PermSpotsList:         {},
	PermSpotsEdit:         {},
	PermSpotsDelete:       {},
	PermSystemConfigure:   {},
}

// Valid reports whether p is in the registry.
func (p Permission) Valid() bool {
	_, ok := KnownPermissions[p]
	return ok
}

// PermissionSet is an unordered set of permission tokens.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from a slice, dropping duplicates.
func NewPermissionSet(perms []Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Sorted returns the set as a sorted slice. Ordering is a presentation
// nicety for API responses, not a correctness requirement.
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ContainsAny reports whether the set holds at least one of required.
func (s PermissionSet) ContainsAny(required ...Permission) bool {
	for _, p := range required {
		if _, ok := s[p]; ok {
			return true
		}
	}
	return false
}
