package identity

import (
	"strings"

	"github.com/despachante/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Role is the access level of a collaborator
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCollaborator Role = "collaborator"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCollaborator
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// User is a back-office collaborator able to log in
type User struct {
	shared.BaseEntity
	Name         string
	Login        string
	PasswordHash string
	Role         Role
	Active       bool
}

// NewUser creates a collaborator with a hashed password
func NewUser(name, login, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	login = strings.ToLower(strings.TrimSpace(login))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if login == "" {
		return nil, shared.NewDomainError("INVALID_LOGIN", "Login is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Login:      login,
		Role:       role,
		Active:     true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Update changes the collaborator's profile data
func (u *User) Update(name string, role Role) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	u.Name = name
	u.Role = role
	u.Touch()
	return nil
}

// Deactivate blocks the collaborator from logging in
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

// Activate re-enables the collaborator
func (u *User) Activate() {
	u.Active = true
	u.Touch()
}

// AsActor returns the authorization token carried into use cases
func (u *User) AsActor() Actor {
	return Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}
