package models

import (
	"github.com/despachante/backend/internal/domain/identity"
)

// UserModel is the persistence model for the collaborator User entity.
type UserModel struct {
	BaseModel
	Name         string        `gorm:"type:varchar(200);not null"`
	Login        string        `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_login"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'collaborator'"`
	Active       bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Login:        m.Login,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Name = u.Name
	m.Login = u.Login
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Active = u.Active
}
