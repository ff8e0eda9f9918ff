package shop

import (
	"errors"

	"github.com/01moynul/storefront-golang/internal/port"
)

var (
	ErrUnauthenticated    = errors.New("login required")
	ErrUnauthorized       = errors.New("admin access required")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrNotFound is shared with the repositories so wrapped store errors match it.
	ErrNotFound = port.ErrNotFound
)

// Principal is the identity attached to a request session. The zero value is
// an anonymous visitor.
type Principal struct {
	UserID  int64
	Name    string
	IsAdmin bool
}

// Authenticated reports whether a user is logged in.
func (p Principal) Authenticated() bool {
	return p.UserID != 0
}
