package models

import (
	"time"

	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashMovementModel is the persistence model for a ledger entry.
// The reference columns are plain values without a foreign key: the
// target may be deleted, leaving the row an orphan by design of the
// ledger (reports resolve and skip orphans at read time).
type CashMovementModel struct {
	BaseModel
	Date          time.Time             `gorm:"not null;index"`
	Direction     finance.Direction     `gorm:"type:varchar(10);not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(14,2);not null"`
	Description   string                `gorm:"type:varchar(300)"`
	ReferenceKind finance.ReferenceKind `gorm:"type:varchar(10);not null;default:'none';index:idx_cash_movements_ref"`
	ReferenceID   *uuid.UUID            `gorm:"type:uuid;index:idx_cash_movements_ref"`
}

// TableName returns the table name for GORM
func (CashMovementModel) TableName() string {
	return "cash_movements"
}

// ToDomain converts the persistence model to a domain CashMovement.
func (m *CashMovementModel) ToDomain() *finance.CashMovement {
	return &finance.CashMovement{
		BaseEntity:  m.BaseModel.ToDomain(),
		Date:        m.Date,
		Direction:   m.Direction,
		Amount:      valueobject.NewMoney(m.Amount),
		Description: m.Description,
		Reference: finance.MovementReference{
			Kind: m.ReferenceKind,
			ID:   m.ReferenceID,
		},
	}
}

// FromDomain populates the persistence model from a domain CashMovement.
func (m *CashMovementModel) FromDomain(mv *finance.CashMovement) {
	m.FromDomainBaseEntity(mv.BaseEntity)
	m.Date = mv.Date
	m.Direction = mv.Direction
	m.Amount = mv.Amount.Amount()
	m.Description = mv.Description
	m.ReferenceKind = mv.Reference.Kind
	m.ReferenceID = mv.Reference.ID
}

// ExpenseModel is the persistence model for the Expense domain entity.
type ExpenseModel struct {
	BaseModel
	Date        time.Time       `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description string          `gorm:"type:varchar(300);not null"`
	Category    string          `gorm:"type:varchar(100);index"`
	Paid        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity:  m.BaseModel.ToDomain(),
		Date:        m.Date,
		Amount:      valueobject.NewMoney(m.Amount),
		Description: m.Description,
		Category:    m.Category,
		Paid:        m.Paid,
	}
}

// FromDomain populates the persistence model from a domain Expense.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Date = e.Date
	m.Amount = e.Amount.Amount()
	m.Description = e.Description
	m.Category = e.Category
	m.Paid = e.Paid
}
