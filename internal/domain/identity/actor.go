package identity

import (
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Actor identifies who is performing an operation. Use cases take it as
// an explicit argument instead of reading ambient request state.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role Role
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RequireAdmin returns ErrForbidden unless the actor is an admin
func (a Actor) RequireAdmin() error {
	if !a.IsAdmin() {
		return shared.ErrForbidden
	}
	return nil
}
