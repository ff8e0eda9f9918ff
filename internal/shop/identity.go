package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Identity registers and authenticates users.
type Identity struct {
	Store port.Store
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a non-admin user. The email is checked for uniqueness
// before the password is hashed; a unique-index violation from a concurrent
// registration is reported the same way.
func (s *Identity) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return models.User{}, ErrInvalidInput
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, ErrDuplicateEmail
	case !errors.Is(err, port.ErrNotFound):
		return models.User{}, fmt.Errorf("check email: %w", err)
	}

	var password models.Password
	if err := password.Set(in.Password); err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Store.Users().CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password.Hash,
	})
	if errors.Is(err, port.ErrDuplicate) {
		return models.User{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user owning email if password matches. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Identity) Authenticate(ctx context.Context, email, plaintext string) (models.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, port.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("look up user: %w", err)
	}

	password := models.Password{Hash: user.PasswordHash}
	ok, err := password.Matches(plaintext)
	if err != nil {
		return models.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Principal builds the session identity for a logged-in user.
func (s *Identity) Principal(u models.User) Principal {
	return Principal{UserID: u.ID, Name: u.Name, IsAdmin: u.IsAdmin}
}

// VerifyAdmin re-reads the user from the identity store and fails with
// ErrUnauthorized unless they still hold the admin flag. The flag carried in
// the session is never trusted on its own.
func (s *Identity) VerifyAdmin(ctx context.Context, who Principal) error {
	if !who.Authenticated() {
		return ErrUnauthenticated
	}

	user, err := s.Store.Users().GetUser(ctx, who.UserID)
	if errors.Is(err, port.ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}
	if !user.IsAdmin {
		return ErrUnauthorized
	}
	return nil
}
