package billing

import (
	"strings"
	"time"

	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ServiceOrder represents a service rendered for a client, together with
// its billing ledger: billed total, amount received and the derived
// pending balance and payment status. It is the aggregate root owning
// its line items.
type ServiceOrder struct {
	shared.BaseEntity
	ClientID       uuid.UUID
	ServiceType    string
	Details        string
	Plate          string
	ServiceDate    time.Time
	DueDate        *time.Time
	BilledTotal    valueobject.Money
	AmountReceived valueobject.Money
	PendingBalance valueobject.Money
	ProcessStatus  ProcessStatus
	PaymentStatus  PaymentStatus
	LineItems      []LineItem
}

// LineItem is an itemized billing entry owned by a service order
type LineItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID
	Description string
	Amount      valueobject.Money
}

// NewServiceOrder creates a new service order. The ledger state is
// derived immediately from the initial totals.
func NewServiceOrder(
	clientID uuid.UUID,
	serviceType, plate string,
	serviceDate time.Time,
	billed, received valueobject.Money,
) (*ServiceOrder, error) {
	serviceType = strings.TrimSpace(serviceType)
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Service order requires a client")
	}
	if serviceType == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_TYPE", "Service type is required")
	}
	if plate == "" {
		return nil, shared.NewDomainError("INVALID_PLATE", "Vehicle plate is required")
	}
	if serviceDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_SERVICE_DATE", "Service date is required")
	}
	if billed.IsNegative() || received.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Totals cannot be negative")
	}

	o := &ServiceOrder{
		BaseEntity:     shared.NewBaseEntity(),
		ClientID:       clientID,
		ServiceType:    serviceType,
		Plate:          plate,
		ServiceDate:    serviceDate,
		BilledTotal:    billed,
		AmountReceived: received,
		ProcessStatus:  ProcessPending,
	}
	o.recompute()
	return o, nil
}

// SetDetails sets the free-text description of the work
func (o *ServiceOrder) SetDetails(details string) {
	o.Details = details
	o.Touch()
}

// SetDueDate sets or clears the optional due date
func (o *ServiceOrder) SetDueDate(due *time.Time) {
	o.DueDate = due
	o.Touch()
}

// SetProcessStatus sets the workflow label. Any valid value may follow
// any other; payment status is untouched.
func (o *ServiceOrder) SetProcessStatus(status ProcessStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PROCESS_STATUS", "Unknown process status")
	}
	o.ProcessStatus = status
	o.Touch()
	return nil
}

// RegisterPayment increments the amount received and rederives the
// ledger state. The caller appends the matching cash movement in the
// same transaction.
func (o *ServiceOrder) RegisterPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	o.AmountReceived = o.AmountReceived.Add(amount)
	o.recompute()
	o.Touch()
	return nil
}

// UpdateTotals replaces both ledger totals (manual correction path) and
// rederives the ledger state.
func (o *ServiceOrder) UpdateTotals(billed, received valueobject.Money) error {
	if billed.IsNegative() || received.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Totals cannot be negative")
	}
	o.BilledTotal = billed
	o.AmountReceived = received
	o.recompute()
	o.Touch()
	return nil
}

// recompute rederives pending balance and payment status from the
// current totals. Stored status is never trusted.
func (o *ServiceOrder) recompute() {
	o.PendingBalance, o.PaymentStatus = LedgerState(o.BilledTotal, o.AmountReceived)
}

// AddLineItem appends an itemized billing entry to the order
func (o *ServiceOrder) AddLineItem(description string, amount valueobject.Money) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item description is required")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item amount cannot be negative")
	}
	o.LineItems = append(o.LineItems, LineItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		Description: description,
		Amount:      amount,
	})
	o.Touch()
	return nil
}

// LineItemsTotal sums the amounts of all line items
func (o *ServiceOrder) LineItemsTotal() valueobject.Money {
	total := valueobject.Zero()
	for _, item := range o.LineItems {
		total = total.Add(item.Amount)
	}
	return total
}

// HasPendingBalance reports whether a material amount remains to collect
func (o *ServiceOrder) HasPendingBalance() bool {
	return o.PendingBalance.IsMaterial()
}
