package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for collaborator persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByLogin finds a user by login name
	FindByLogin(ctx context.Context, login string) (*User, error)

	// FindAll lists all collaborators, newest first
	FindAll(ctx context.Context) ([]User, error)

	// Save creates or updates a user. A login collision with another
	// user surfaces as shared.ErrLoginConflict.
	Save(ctx context.Context, user *User) error
}
