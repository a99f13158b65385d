package finance

import (
	"strings"
	"time"

	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Direction tells whether a movement brings money in or pays money out
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// String returns the string representation
func (d Direction) String() string {
	return string(d)
}

// DisplayName returns the Portuguese label shown to users
func (d Direction) DisplayName() string {
	if d == DirectionInflow {
		return "Entrada"
	}
	return "Saída"
}

// ReferenceKind tags what a movement's weak reference points at
type ReferenceKind string

const (
	ReferenceService ReferenceKind = "service"
	ReferenceExpense ReferenceKind = "expense"
	ReferenceNone    ReferenceKind = "none"
)

// MovementReference is a weak polymorphic reference. It stores an
// identifier and a kind tag without referential integrity: the target
// may be deleted later, leaving the movement an orphan that report
// readers must detect and skip.
type MovementReference struct {
	Kind ReferenceKind
	ID   *uuid.UUID
}

// ServiceReference points a movement at a service order
func ServiceReference(id uuid.UUID) MovementReference {
	return MovementReference{Kind: ReferenceService, ID: &id}
}

// ExpenseReference points a movement at an expense
func ExpenseReference(id uuid.UUID) MovementReference {
	return MovementReference{Kind: ReferenceExpense, ID: &id}
}

// NoReference marks a free-standing movement
func NoReference() MovementReference {
	return MovementReference{Kind: ReferenceNone}
}

// IsNone reports whether the movement stands alone
func (r MovementReference) IsNone() bool {
	return r.Kind == ReferenceNone || r.ID == nil
}

// CashMovement is one append-only ledger entry. Movements are created,
// never edited; they are deleted only when the service order that owns
// them is deleted in the same transaction.
type CashMovement struct {
	shared.BaseEntity
	Date        time.Time
	Direction   Direction
	Amount      valueobject.Money
	Description string
	Reference   MovementReference
}

// NewCashMovement creates a ledger entry. Amounts are stored positive;
// the direction carries the sign.
func NewCashMovement(
	date time.Time,
	direction Direction,
	amount valueobject.Money,
	description string,
	ref MovementReference,
) (*CashMovement, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Unknown movement direction")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Movement amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &CashMovement{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        date,
		Direction:   direction,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Reference:   ref,
	}, nil
}

// IsInflow reports whether the movement is tagged as money in
func (m *CashMovement) IsInflow() bool {
	return m.Direction == DirectionInflow
}
