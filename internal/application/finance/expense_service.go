package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/identity"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenses  finance.ExpenseRepository
	movements finance.CashMovementRepository
	tx        shared.TransactionManager
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenses finance.ExpenseRepository,
	movements finance.CashMovementRepository,
	tx shared.TransactionManager,
) *ExpenseService {
	return &ExpenseService{expenses: expenses, movements: movements, tx: tx}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID         `json:"id"`
	Date        time.Time         `json:"date"`
	Amount      valueobject.Money `json:"amount"`
	Description string            `json:"description"`
	Category    string            `json:"category,omitempty"`
	Paid        bool              `json:"paid"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CreateExpenseRequest represents a request to register an expense
type CreateExpenseRequest struct {
	Date        string `json:"date"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
}

// ListExpensesRequest narrows the expense listing
type ListExpensesRequest struct {
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
}

// ListExpensesResponse carries the rows plus the distinct categories
// present, for building the filter choices
type ListExpensesResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	Categories []string          `json:"categories"`
}

// CreateExpense registers an expense and appends its Outflow cash
// movement in the same transaction
func (s *ExpenseService) CreateExpense(ctx context.Context, _ identity.Actor, req CreateExpenseRequest) (*ExpenseResponse, error) {
	amount := valueobject.ParseBRL(req.Amount)

	date := today()
	if d := parseDate(req.Date); d != nil {
		date = *d
	}

	expense, err := finance.NewExpense(date, amount, req.Description, req.Category)
	if err != nil {
		return nil, err
	}

	err = s.tx.Do(ctx, func(txCtx context.Context) error {
		if err := s.expenses.Save(txCtx, expense); err != nil {
			return err
		}
		movement, err := finance.NewCashMovement(
			expense.Date,
			finance.DirectionOutflow,
			expense.Amount,
			fmt.Sprintf("Pagamento despesa - %s", expense.Description),
			finance.ExpenseReference(expense.ID),
		)
		if err != nil {
			return err
		}
		return s.movements.Save(txCtx, movement)
	})
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists expenses matching the filter, newest date first
func (s *ExpenseService) ListExpenses(ctx context.Context, req ListExpensesRequest) (*ListExpensesResponse, error) {
	expenses, err := s.expenses.FindFiltered(ctx, finance.ExpenseFilter{
		Category: req.Category,
		From:     parseDate(req.From),
		To:       parseDate(req.To),
	})
	if err != nil {
		return nil, err
	}
	categories, err := s.expenses.Categories(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, *toExpenseResponse(&expenses[i]))
	}
	return &ListExpensesResponse{Expenses: out, Categories: categories}, nil
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Paid:        e.Paid,
		CreatedAt:   e.CreatedAt,
	}
}
