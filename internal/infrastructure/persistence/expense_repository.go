package persistence

import (
	"context"
	"errors"

	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindFiltered lists expenses matching the filter, newest date first
func (r *GormExpenseRepository) FindFiltered(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	query := r.conn(ctx).Model(&models.ExpenseModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var rows []models.ExpenseModel
	if err := query.Order("date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	expenses := make([]finance.Expense, 0, len(rows))
	for i := range rows {
		expenses = append(expenses, *rows[i].ToDomain())
	}
	return expenses, nil
}

// Categories returns the distinct non-empty categories present, sorted
// alphabetically
func (r *GormExpenseRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.conn(ctx).Model(&models.ExpenseModel{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(expense)
	return r.conn(ctx).Save(&model).Error
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
