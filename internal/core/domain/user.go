package domain

import (
	"errors"
	"time"
)

// DefaultAdminLogin is the seed administrator account created on an empty
// database. Its presence alone keeps the unauthenticated signup window open.
const DefaultAdminLogin = "admin"

// DefaultGroupName is the low-privilege group every new user is enrolled in.
const DefaultGroupName = "consulta"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrSelfDelete = errors.New("cannot delete own user")
var ErrNothingToUpdate = errors.New("no fields to update")

var ErrMissingToken = errors.New("missing token")
var ErrInvalidToken = errors.New("invalid token")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrPermissionDenied = errors.New("insufficient permission")
var ErrTooManyAttempts = errors.New("too many login attempts")

// User models one human account. The password is held only as a bcrypt hash
// and must never appear in responses or logs.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"usuario"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"nome"`
	Email        string    `json:"email,omitempty"`
	Active       bool      `json:"ativo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the decoded content of a session token. It carries no
// permissions: those are resolved live on every request.
type Identity struct {
	UserID string `json:"id"`
	Login  string `json:"usuario"`
	Name   string `json:"nome"`
}
