package domain

import (
	"errors"
	"time"
)

var ErrGroupNotFound = errors.New("group not found")
var ErrGroupExists = errors.New("group already exists")
var ErrUnknownPermission = errors.New("unknown permission token")

// AccessGroup is a named, reusable bundle of permissions. An inactive group
// contributes nothing to its members even while memberships remain linked.
type AccessGroup struct {
	ID          string       `json:"id"`
	Name        string       `json:"nome"`
	Description string       `json:"descricao"`
	Permissions []Permission `json:"permissoes"`
	Active      bool         `json:"ativo"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Membership links a user to an access group. The (user, group) pair is
// unique; deleting either side removes the link.
type Membership struct {
	UserID    string    `json:"usuario_id"`
	GroupID   string    `json:"grupo_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SeedGroups are created at bootstrap and have their permission sets
// re-synced on every startup, matching deployed group definitions.
var SeedGroups = []AccessGroup{
	{
		Name:        "admin",
		Description: "Administrador do Sistema",
		Permissions: []Permission{
			PermAdmin,
			PermUsersCreate, PermUsersList, PermUsersEdit, PermUsersDelete,
			PermEnrollmentsCreate, PermEnrollmentsList, PermEnrollmentsEdit, PermEnrollmentsDelete,
			PermGroupsCreate, PermGroupsList, PermGroupsEdit, PermGroupsDelete,
			PermSpotsCreate, PermSpotsList, PermSpotsEdit, PermSpotsDelete,
			PermSystemConfigure,
		},
		Active: true,
	},
	{
		Name:        "operador",
		Description: "Operador do Sistema",
		Permissions: []Permission{
			PermEnrollmentsCreate, PermEnrollmentsList, PermEnrollmentsEdit,
			PermUsersList,
		},
		Active: true,
	},
	{
		Name:        "consulta",
		Description: "Apenas Consulta",
		Permissions: []Permission{
			PermEnrollmentsList, PermUsersList,
		},
		Active: true,
	},
}
