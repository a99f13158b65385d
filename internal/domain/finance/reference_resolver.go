package finance

import (
	"context"

	"github.com/despachante/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// OrderLookup resolves service order references
type OrderLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*billing.ServiceOrder, error)
}

// ExpenseLookup resolves expense references
type ExpenseLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
}

// ResolvedMovement is a ledger entry together with its resolved target,
// when one exists
type ResolvedMovement struct {
	Movement CashMovement
	Order    *billing.ServiceOrder
	Expense  *Expense
}

// ReferencesService reports whether the entry resolved to a live order
func (r ResolvedMovement) ReferencesService() bool {
	return r.Order != nil
}

// ReferenceResolver classifies ledger entries against their weak
// references. Service deletion preserves historical movements, so a
// Service reference may dangle; those entries are invisible to reports.
type ReferenceResolver struct {
	orders   OrderLookup
	expenses ExpenseLookup
}

// NewReferenceResolver creates a resolver over the given lookups
func NewReferenceResolver(orders OrderLookup, expenses ExpenseLookup) *ReferenceResolver {
	return &ReferenceResolver{orders: orders, expenses: expenses}
}

// Resolve classifies one entry. The second return value is false when
// the entry must be excluded: a Service reference whose order no longer
// exists, or whose order belongs to a different client than the optional
// filter. Resolution never fails; a lookup error counts as not found.
// Expense and free-standing entries are always included.
func (rr *ReferenceResolver) Resolve(ctx context.Context, mv CashMovement, clientID *uuid.UUID) (ResolvedMovement, bool) {
	out := ResolvedMovement{Movement: mv}

	switch {
	case mv.Reference.Kind == ReferenceService && mv.Reference.ID != nil:
		order, err := rr.orders.FindByID(ctx, *mv.Reference.ID)
		if err != nil || order == nil {
			// lookup failures count as not found, the entry stays invisible
			return out, false
		}
		if clientID != nil && order.ClientID != *clientID {
			return out, false
		}
		out.Order = order
		return out, true

	case mv.Reference.Kind == ReferenceExpense && mv.Reference.ID != nil:
		if expense, err := rr.expenses.FindByID(ctx, *mv.Reference.ID); err == nil {
			out.Expense = expense
		}
		return out, true

	default:
		return out, true
	}
}

// ResolveAll classifies each entry independently, preserving input order
// and dropping excluded entries. There is no batch short-circuit: one
// bad reference never hides its neighbors.
func (rr *ReferenceResolver) ResolveAll(ctx context.Context, movements []CashMovement, clientID *uuid.UUID) []ResolvedMovement {
	resolved := make([]ResolvedMovement, 0, len(movements))
	for _, mv := range movements {
		if r, ok := rr.Resolve(ctx, mv, clientID); ok {
			resolved = append(resolved, r)
		}
	}
	return resolved
}
