package domain

import (
	"context"
	"errors"
)

// ErrEmailTaken is returned by UserDirectory.Create for an email that is
// already registered.
var ErrEmailTaken = errors.New("email already registered")

// User is a registered account in the mock user directory. Passwords are
// stored and compared in plaintext; there is no security model here.
type User struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Password string  `json:"-"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	c := u
	if u.Phone != nil {
		p := *u.Phone
		c.Phone = &p
	}
	if u.Address != nil {
		a := *u.Address
		c.Address = &a
	}
	return c
}

// UserDirectory is the port for the registered-user collection.
// Lookups that find nothing return a nil user and a nil error.
type UserDirectory interface {
	// GetByCredentials returns the first user whose email and password both
	// match exactly.
	GetByCredentials(ctx context.Context, email, password string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u User) (*User, error)
	// Replace swaps the entry that has u.ID in place. It reports whether an
	// entry was found.
	Replace(ctx context.Context, u User) (bool, error)
}
