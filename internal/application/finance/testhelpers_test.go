package finance

import (
	"context"
	"sort"

	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/identity"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// txRunner adapts a function to shared.TransactionManager
type txRunner func(ctx context.Context, fn func(context.Context) error) error

func (f txRunner) Do(ctx context.Context, fn func(context.Context) error) error {
	return f(ctx, fn)
}

type stubExpenseRepo struct {
	expenses []finance.Expense
}

func (s *stubExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.Expense, error) {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return &s.expenses[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubExpenseRepo) FindFiltered(_ context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	var out []finance.Expense
	for _, e := range s.expenses {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *stubExpenseRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.expenses {
		if e.Category == "" {
			continue
		}
		if _, ok := seen[e.Category]; !ok {
			seen[e.Category] = struct{}{}
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *stubExpenseRepo) Save(_ context.Context, e *finance.Expense) error {
	s.expenses = append(s.expenses, *e)
	return nil
}

func adminActor() identity.Actor {
	return identity.Actor{ID: uuid.New(), Name: "Ana", Role: identity.RoleAdmin}
}
