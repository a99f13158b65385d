package models

import (
	"time"

	"github.com/despachante/backend/internal/domain/billing"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceOrderModel is the persistence model for the ServiceOrder aggregate.
type ServiceOrderModel struct {
	BaseModel
	ClientID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	ServiceType    string                `gorm:"type:varchar(100);not null;index"`
	Details        string                `gorm:"type:text"`
	Plate          string                `gorm:"type:varchar(20);not null;index"`
	ServiceDate    time.Time             `gorm:"not null;index"`
	DueDate        *time.Time            `gorm:"index"`
	BilledTotal    decimal.Decimal       `gorm:"type:decimal(14,2);not null;default:0"`
	AmountReceived decimal.Decimal       `gorm:"type:decimal(14,2);not null;default:0"`
	PendingBalance decimal.Decimal       `gorm:"type:decimal(14,2);not null;default:0"`
	ProcessStatus  billing.ProcessStatus `gorm:"type:varchar(30);not null;default:'pending';index"`
	PaymentStatus  billing.PaymentStatus `gorm:"type:varchar(30);not null;default:'not_billed';index"`
	LineItems      []LineItemModel       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ServiceOrderModel) TableName() string {
	return "service_orders"
}

// LineItemModel is the persistence model for an order's itemized billing entry.
type LineItemModel struct {
	BaseModel
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(300);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToDomain converts the persistence model to a domain ServiceOrder aggregate.
func (m *ServiceOrderModel) ToDomain() *billing.ServiceOrder {
	items := make([]billing.LineItem, 0, len(m.LineItems))
	for i := range m.LineItems {
		items = append(items, *m.LineItems[i].ToDomain())
	}
	return &billing.ServiceOrder{
		BaseEntity:     m.BaseModel.ToDomain(),
		ClientID:       m.ClientID,
		ServiceType:    m.ServiceType,
		Details:        m.Details,
		Plate:          m.Plate,
		ServiceDate:    m.ServiceDate,
		DueDate:        m.DueDate,
		BilledTotal:    valueobject.NewMoney(m.BilledTotal),
		AmountReceived: valueobject.NewMoney(m.AmountReceived),
		PendingBalance: valueobject.NewMoney(m.PendingBalance),
		ProcessStatus:  m.ProcessStatus,
		PaymentStatus:  m.PaymentStatus,
		LineItems:      items,
	}
}

// FromDomain populates the persistence model from a domain ServiceOrder.
func (m *ServiceOrderModel) FromDomain(o *billing.ServiceOrder) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.ClientID = o.ClientID
	m.ServiceType = o.ServiceType
	m.Details = o.Details
	m.Plate = o.Plate
	m.ServiceDate = o.ServiceDate
	m.DueDate = o.DueDate
	m.BilledTotal = o.BilledTotal.Amount()
	m.AmountReceived = o.AmountReceived.Amount()
	m.PendingBalance = o.PendingBalance.Amount()
	m.ProcessStatus = o.ProcessStatus
	m.PaymentStatus = o.PaymentStatus
	m.LineItems = make([]LineItemModel, 0, len(o.LineItems))
	for i := range o.LineItems {
		var item LineItemModel
		item.FromDomain(&o.LineItems[i])
		m.LineItems = append(m.LineItems, item)
	}
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *LineItemModel) ToDomain() *billing.LineItem {
	return &billing.LineItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		OrderID:     m.OrderID,
		Description: m.Description,
		Amount:      valueobject.NewMoney(m.Amount),
	}
}

// FromDomain populates the persistence model from a domain LineItem.
func (m *LineItemModel) FromDomain(item *billing.LineItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.OrderID = item.OrderID
	m.Description = item.Description
	m.Amount = item.Amount.Amount()
}
