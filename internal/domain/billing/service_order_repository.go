package billing

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ListFilter narrows the service order listing. Nil/empty fields are
// ignored. Plate matches case-insensitively on a partial value.
type ListFilter struct {
	ProcessStatus *ProcessStatus
	ClientID      *uuid.UUID
	Plate         string
	From          *time.Time
	To            *time.Time
}

// ReceivablesFilter narrows the set of orders still owing money
type ReceivablesFilter struct {
	ClientID *uuid.UUID
	Plate    string
	From     *time.Time
	To       *time.Time
}

// CashFlowFilter narrows orders for the managerial report
type CashFlowFilter struct {
	ClientID    *uuid.UUID
	ServiceType string
	From        *time.Time
	To          *time.Time
}

// ServiceOrderRepository defines the interface for service order persistence
type ServiceOrderRepository interface {
	// FindByID finds an order with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceOrder, error)

	// FindAll lists orders matching the filter, newest registration first
	FindAll(ctx context.Context, filter ListFilter) ([]ServiceOrder, error)

	// FindOpen lists orders whose pending balance exceeds the cent
	// tolerance, most recent service date first
	FindOpen(ctx context.Context, filter ReceivablesFilter) ([]ServiceOrder, error)

	// FindReceivables lists orders where billed_total > amount_received,
	// oldest service date first
	FindReceivables(ctx context.Context, filter ReceivablesFilter) ([]ServiceOrder, error)

	// FindForCashFlow lists orders matching the managerial report filter
	FindForCashFlow(ctx context.Context, filter CashFlowFilter) ([]ServiceOrder, error)

	// FindRecent returns the orders with the most recent service dates
	FindRecent(ctx context.Context, limit int) ([]ServiceOrder, error)

	// CountByProcessStatus counts orders carrying any of the given labels
	CountByProcessStatus(ctx context.Context, statuses ...ProcessStatus) (int64, error)

	// SumPendingByPaymentStatus sums pending balances of orders carrying
	// any of the given payment statuses
	SumPendingByPaymentStatus(ctx context.Context, statuses ...PaymentStatus) (valueobject.Money, error)

	// DistinctServiceTypes returns the sorted distinct service types present
	DistinctServiceTypes(ctx context.Context) ([]string, error)

	// DistinctPlatesByClient returns, per client, the distinct plates of
	// that client's orders (for the payment screen filter)
	DistinctPlatesByClient(ctx context.Context) (map[uuid.UUID][]string, error)

	// Save creates or updates an order together with its line items
	Save(ctx context.Context, order *ServiceOrder) error

	// Delete removes the order and its line items. Cash movements are
	// removed by the caller within the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
