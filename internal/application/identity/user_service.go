package identity

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserService provides collaborator management. Every operation is
// admin-gated.
type UserService struct {
	users identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserResponse represents a collaborator in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest represents a request to register a collaborator
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest represents a request to edit a collaborator. An
// empty password leaves the current one in place.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"`
	Active   *bool  `json:"active"`
}

// CreateUser registers a collaborator
func (s *UserService) CreateUser(ctx context.Context, actor identity.Actor, req CreateUserRequest) (*UserResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	user, err := identity.NewUser(req.Name, req.Login, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateUser edits a collaborator's profile, role, password or standing
func (s *UserService) UpdateUser(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Update(req.Name, identity.Role(req.Role)); err != nil {
		return nil, err
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers lists all collaborators
func (s *UserService) ListUsers(ctx context.Context, actor identity.Actor) ([]UserResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *toUserResponse(&users[i]))
	}
	return out, nil
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Login:     u.Login,
		Role:      u.Role.String(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
