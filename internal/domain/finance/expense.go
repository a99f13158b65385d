package finance

import (
	"strings"
	"time"

	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
)

// Expense is a standalone operating cost. Each registration also appends
// a linked Outflow cash movement in the same transaction.
type Expense struct {
	shared.BaseEntity
	Date        time.Time
	Amount      valueobject.Money
	Description string
	Category    string
	Paid        bool
}

// NewExpense creates an expense. It is recorded as already paid; unpaid
// provisioning is not part of this ledger.
func NewExpense(date time.Time, amount valueobject.Money, description, category string) (*Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        date,
		Amount:      amount,
		Description: description,
		Category:    strings.TrimSpace(category),
		Paid:        true,
	}, nil
}
