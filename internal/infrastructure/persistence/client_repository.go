package persistence

import (
	"context"
	"errors"

	"github.com/despachante/backend/internal/domain/partner"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTaxID finds a client by its CPF/CNPJ
func (r *GormClientRepository) FindByTaxID(ctx context.Context, taxID string) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.conn(ctx).Where("tax_id = ?", taxID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all clients, newest registration first
func (r *GormClientRepository) FindAll(ctx context.Context) ([]partner.Client, error) {
	var rows []models.ClientModel
	if err := r.conn(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	clients := make([]partner.Client, 0, len(rows))
	for i := range rows {
		clients = append(clients, *rows[i].ToDomain())
	}
	return clients, nil
}

// Count returns the total number of registered clients
func (r *GormClientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.ClientModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a client. A tax-ID collision with another
// client surfaces as shared.ErrTaxIDConflict.
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	db := r.conn(ctx)

	var count int64
	if err := db.Model(&models.ClientModel{}).
		Where("tax_id = ? AND id <> ?", client.TaxID, client.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrTaxIDConflict
	}

	var model models.ClientModel
	model.FromDomain(client)
	return db.Save(&model).Error
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)
