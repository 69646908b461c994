package ports

import (
	"context"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// AuthService authenticates credentials and issues/verifies session tokens.
type AuthService interface {
	// Login validates the login/password pair against active accounts and
	// returns a signed token plus the matching user. Unknown login and
	// wrong password both surface as domain.ErrInvalidCredentials.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	// VerifyToken checks signature and expiry of a bearer token and
	// returns the embedded identity. Purely local, no database access.
	VerifyToken(token string) (*domain.Identity, error)
}

// PermissionResolver computes a user's live permission set. It never fails:
// data-layer errors are logged and collapse to the empty set so the
// authorization gate fails closed.
type PermissionResolver interface {
	Resolve(ctx context.Context, userID string) domain.PermissionSet
}
