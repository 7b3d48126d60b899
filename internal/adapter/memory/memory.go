// Package memory implements an in-memory user directory.
package memory

import (
	"context"
	"errors"
	"sync"

	"shopfront/internal/domain"
)

// Directory is an in-memory, insertion-ordered user collection.
type Directory struct {
	mu    sync.Mutex
	users []domain.User
}

// Ensure interfaces are met.
var _ domain.UserDirectory = (*Directory)(nil)

// New creates a directory holding a copy of users.
func New(users ...domain.User) *Directory {
	d := &Directory{users: make([]domain.User, 0, len(users))}
	for _, u := range users {
		d.users = append(d.users, u.Clone())
	}
	return d
}

// DemoUser returns the account every fresh process starts with.
func DemoUser() domain.User {
	phone := "+1 (555) 123-4567"
	address := "123 Main St, City, State 12345"
	return domain.User{
		ID:       "1",
		Email:    "demo@example.com",
		Password: "password123",
		Name:     "Demo User",
		Phone:    &phone,
		Address:  &address,
	}
}

// NewSeeded creates a directory containing only DemoUser.
func NewSeeded() *Directory {
	return New(DemoUser())
}

// GetByCredentials scans users in order and returns the first exact match.
func (d *Directory) GetByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Email == email && u.Password == password {
			c := u.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// GetByEmail retrieves a user by email.
func (d *Directory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Email == email {
			c := u.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID. It is not part of domain.UserDirectory.
func (d *Directory) GetByID(ctx context.Context, id string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.ID == id {
			c := u.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// Create appends a new user.
func (d *Directory) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	if u.ID == "" {
		return nil, errors.New("user id is required")
	}

	d.users = append(d.users, u.Clone())
	c := u.Clone()
	return &c, nil
}

// Replace swaps the entry with u.ID in place.
func (d *Directory) Replace(ctx context.Context, u domain.User) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.users {
		if d.users[i].ID == u.ID {
			d.users[i] = u.Clone()
			return true, nil
		}
	}
	return false, nil
}

// Count returns the total number of users. It is not part of
// domain.UserDirectory.
func (d *Directory) Count(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users), nil
}
