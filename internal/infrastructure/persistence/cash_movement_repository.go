package persistence

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/despachante/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashMovementRepository implements CashMovementRepository using GORM
type GormCashMovementRepository struct {
	db *gorm.DB
}

// NewGormCashMovementRepository creates a new GormCashMovementRepository
func NewGormCashMovementRepository(db *gorm.DB) *GormCashMovementRepository {
	return &GormCashMovementRepository{db: db}
}

func (r *GormCashMovementRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// Save appends a movement to the log
func (r *GormCashMovementRepository) Save(ctx context.Context, movement *finance.CashMovement) error {
	var model models.CashMovementModel
	model.FromDomain(movement)
	return r.conn(ctx).Save(&model).Error
}

// FindByPeriod lists movements within the optional date bounds, ordered
// by movement date descending, then insertion order descending
func (r *GormCashMovementRepository) FindByPeriod(ctx context.Context, from, to *time.Time) ([]finance.CashMovement, error) {
	query := r.conn(ctx).Model(&models.CashMovementModel{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	var rows []models.CashMovementModel
	if err := query.Order("date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	movements := make([]finance.CashMovement, 0, len(rows))
	for i := range rows {
		movements = append(movements, *rows[i].ToDomain())
	}
	return movements, nil
}

// SumInflowsSince totals Inflow-tagged movements dated at or after the
// given instant
func (r *GormCashMovementRepository) SumInflowsSince(ctx context.Context, since time.Time) (valueobject.Money, error) {
	var total decimal.Decimal
	err := r.conn(ctx).Model(&models.CashMovementModel{}).
		Where("direction = ? AND date >= ?", finance.DirectionInflow, since).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	if err != nil {
		return valueobject.Zero(), err
	}
	return valueobject.NewMoney(total), nil
}

var _ finance.CashMovementRepository = (*GormCashMovementRepository)(nil)
