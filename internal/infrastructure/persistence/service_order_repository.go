package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/despachante/backend/internal/domain/billing"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/despachante/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormServiceOrderRepository implements ServiceOrderRepository using GORM
type GormServiceOrderRepository struct {
	db *gorm.DB
}

// NewGormServiceOrderRepository creates a new GormServiceOrderRepository
func NewGormServiceOrderRepository(db *gorm.DB) *GormServiceOrderRepository {
	return &GormServiceOrderRepository{db: db}
}

func (r *GormServiceOrderRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an order with its line items
func (r *GormServiceOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ServiceOrder, error) {
	var model models.ServiceOrderModel
	if err := r.conn(ctx).Preload("LineItems").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists orders matching the filter, newest registration first
func (r *GormServiceOrderRepository) FindAll(ctx context.Context, filter billing.ListFilter) ([]billing.ServiceOrder, error) {
	query := r.conn(ctx).Model(&models.ServiceOrderModel{}).Preload("LineItems")

	if filter.ProcessStatus != nil {
		query = query.Where("process_status = ?", *filter.ProcessStatus)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	query = applyPlateFilter(query, filter.Plate)
	query = applyDateRange(query, filter.From, filter.To)

	var rows []models.ServiceOrderModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// FindOpen lists orders whose pending balance exceeds the cent
// tolerance, most recent service date first
func (r *GormServiceOrderRepository) FindOpen(ctx context.Context, filter billing.ReceivablesFilter) ([]billing.ServiceOrder, error) {
	query := r.receivablesQuery(ctx, filter).
		Where("pending_balance > ?", valueobject.Tolerance)

	var rows []models.ServiceOrderModel
	if err := query.Order("service_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// FindReceivables lists orders where billed_total > amount_received,
// oldest service date first
func (r *GormServiceOrderRepository) FindReceivables(ctx context.Context, filter billing.ReceivablesFilter) ([]billing.ServiceOrder, error) {
	query := r.receivablesQuery(ctx, filter).
		Where("billed_total > amount_received")

	var rows []models.ServiceOrderModel
	if err := query.Order("service_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

func (r *GormServiceOrderRepository) receivablesQuery(ctx context.Context, filter billing.ReceivablesFilter) *gorm.DB {
	query := r.conn(ctx).Model(&models.ServiceOrderModel{}).Preload("LineItems")
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	query = applyPlateFilter(query, filter.Plate)
	return applyDateRange(query, filter.From, filter.To)
}

// FindForCashFlow lists orders matching the managerial report filter
func (r *GormServiceOrderRepository) FindForCashFlow(ctx context.Context, filter billing.CashFlowFilter) ([]billing.ServiceOrder, error) {
	query := r.conn(ctx).Model(&models.ServiceOrderModel{})

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ServiceType != "" {
		query = query.Where("service_type = ?", filter.ServiceType)
	}
	query = applyDateRange(query, filter.From, filter.To)

	var rows []models.ServiceOrderModel
	if err := query.Order("service_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// FindRecent returns the orders with the most recent service dates
func (r *GormServiceOrderRepository) FindRecent(ctx context.Context, limit int) ([]billing.ServiceOrder, error) {
	var rows []models.ServiceOrderModel
	if err := r.conn(ctx).Order("service_date DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// CountByProcessStatus counts orders carrying any of the given labels
func (r *GormServiceOrderRepository) CountByProcessStatus(ctx context.Context, statuses ...billing.ProcessStatus) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.ServiceOrderModel{}).
		Where("process_status IN ?", statuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumPendingByPaymentStatus sums pending balances of orders carrying
// any of the given payment statuses
func (r *GormServiceOrderRepository) SumPendingByPaymentStatus(ctx context.Context, statuses ...billing.PaymentStatus) (valueobject.Money, error) {
	var total decimal.Decimal
	err := r.conn(ctx).Model(&models.ServiceOrderModel{}).
		Where("payment_status IN ?", statuses).
		Select("COALESCE(SUM(pending_balance), 0)").
		Row().Scan(&total)
	if err != nil {
		return valueobject.Zero(), err
	}
	return valueobject.NewMoney(total), nil
}

// DistinctServiceTypes returns the sorted distinct service types present
func (r *GormServiceOrderRepository) DistinctServiceTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := r.conn(ctx).Model(&models.ServiceOrderModel{}).
		Distinct("service_type").
		Order("service_type ASC").
		Pluck("service_type", &types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// DistinctPlatesByClient returns, per client, the distinct plates of
// that client's orders
func (r *GormServiceOrderRepository) DistinctPlatesByClient(ctx context.Context) (map[uuid.UUID][]string, error) {
	var rows []struct {
		ClientID uuid.UUID
		Plate    string
	}
	if err := r.conn(ctx).Model(&models.ServiceOrderModel{}).
		Distinct("client_id", "plate").
		Order("plate ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	plates := make(map[uuid.UUID][]string)
	for _, row := range rows {
		plates[row.ClientID] = append(plates[row.ClientID], row.Plate)
	}
	return plates, nil
}

// Save creates or updates an order together with its line items. Line
// items are replaced wholesale; the set on the aggregate is the truth.
func (r *GormServiceOrderRepository) Save(ctx context.Context, order *billing.ServiceOrder) error {
	db := r.conn(ctx)

	var model models.ServiceOrderModel
	model.FromDomain(order)
	items := model.LineItems
	model.LineItems = nil

	if err := db.Omit("LineItems").Save(&model).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", order.ID).Delete(&models.LineItemModel{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

// Delete removes the order and its line items. Movements referencing
// the order are untouched; there is no FK on the reference.
func (r *GormServiceOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.conn(ctx)

	if err := db.Where("order_id = ?", id).Delete(&models.LineItemModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.ServiceOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func applyPlateFilter(query *gorm.DB, plate string) *gorm.DB {
	if plate == "" {
		return query
	}
	return query.Where("UPPER(plate) LIKE UPPER(?)", "%"+plate+"%")
}

func applyDateRange(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("service_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("service_date <= ?", *to)
	}
	return query
}

func toDomainOrders(rows []models.ServiceOrderModel) []billing.ServiceOrder {
	orders := make([]billing.ServiceOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders
}

var _ billing.ServiceOrderRepository = (*GormServiceOrderRepository)(nil)
