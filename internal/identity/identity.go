// Package identity defines the authenticated caller value threaded through
// every operation. The caller is resolved exactly once per request from the
// token's email claim; role and department always come from the user record,
// never from session-carried fields.
package identity

import (
	"errors"

	"github.com/civicdesk/backend/internal/models"
)

var ErrUnknownCaller = errors.New("unknown caller")
var ErrInactiveCaller = errors.New("caller is deactivated")

// Caller is the authenticated identity making a request.
type Caller struct {
	ID         uint
	Name       string
	Email      string
	Role       models.UserRole
	Department string
}

// Provider resolves a Caller from an email claim.
type Provider interface {
	ResolveCaller(email string) (Caller, error)
}

// UserLookup is the storage subset the store-backed provider needs.
type UserLookup interface {
	GetUserByEmail(email string) (*models.User, error)
}

// StoreProvider resolves callers against the user store.
type StoreProvider struct {
	users UserLookup
}

func NewStoreProvider(users UserLookup) *StoreProvider {
	return &StoreProvider{users: users}
}

func (p *StoreProvider) ResolveCaller(email string) (Caller, error) {
	user, err := p.users.GetUserByEmail(email)
	if err != nil {
		return Caller{}, err
	}
	if user == nil {
		return Caller{}, ErrUnknownCaller
	}
	if !user.IsActive {
		return Caller{}, ErrInactiveCaller
	}
	return Caller{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
	}, nil
}
