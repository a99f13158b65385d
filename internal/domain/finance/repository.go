package finance

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ExpenseFilter narrows expense queries. Nil/empty fields are ignored.
type ExpenseFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
}

// CashMovementRepository defines the interface for ledger persistence
type CashMovementRepository interface {
	// Save appends a movement to the log
	Save(ctx context.Context, movement *CashMovement) error

	// FindByPeriod lists movements within the optional date bounds,
	// ordered by movement date descending, then insertion order
	// descending
	FindByPeriod(ctx context.Context, from, to *time.Time) ([]CashMovement, error)

	// SumInflowsSince totals Inflow-tagged movements dated at or after
	// the given instant (dashboard month-to-date figure)
	SumInflowsSince(ctx context.Context, since time.Time) (valueobject.Money, error)
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindFiltered lists expenses matching the filter, newest date first
	FindFiltered(ctx context.Context, filter ExpenseFilter) ([]Expense, error)

	// Categories returns the distinct non-empty categories present,
	// sorted alphabetically
	Categories(ctx context.Context) ([]string, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error
}
