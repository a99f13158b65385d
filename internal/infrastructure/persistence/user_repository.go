package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/despachante/backend/internal/domain/identity"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLogin finds a user by login name
func (r *GormUserRepository) FindByLogin(ctx context.Context, login string) (*identity.User, error) {
	var model models.UserModel
	if err := r.conn(ctx).Where("login = ?", strings.ToLower(login)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all collaborators, newest first
func (r *GormUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	var rows []models.UserModel
	if err := r.conn(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]identity.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].ToDomain())
	}
	return users, nil
}

// Save creates or updates a user. A login collision with another user
// surfaces as shared.ErrLoginConflict.
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	db := r.conn(ctx)

	var count int64
	if err := db.Model(&models.UserModel{}).
		Where("login = ? AND id <> ?", user.Login, user.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrLoginConflict
	}

	var model models.UserModel
	model.FromDomain(user)
	return db.Save(&model).Error
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
