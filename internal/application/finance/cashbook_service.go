package finance

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/report"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
)

const dateLayout = "2006-01-02"

// parseDate parses an optional date filter; unparseable input leaves
// the bound unset
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &d
}

// today gives the current date at midnight UTC. Defaulted dates carry
// the same resolution as parsed ones, so a range filter bounded by
// today's date still covers them.
func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CashbookService builds the cash statement (extrato) view
type CashbookService struct {
	movements finance.CashMovementRepository
	resolver  *finance.ReferenceResolver
}

// NewCashbookService creates a new CashbookService
func NewCashbookService(movements finance.CashMovementRepository, resolver *finance.ReferenceResolver) *CashbookService {
	return &CashbookService{movements: movements, resolver: resolver}
}

// StatementRequest narrows the statement period
type StatementRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Statement lists ledger entries in the period, newest first, skipping
// entries whose service reference dangles, and totals what remains.
func (s *CashbookService) Statement(ctx context.Context, req StatementRequest) (*report.CashStatement, error) {
	movements, err := s.movements.FindByPeriod(ctx, parseDate(req.From), parseDate(req.To))
	if err != nil {
		return nil, err
	}
	resolved := s.resolver.ResolveAll(ctx, movements, nil)

	statement := &report.CashStatement{
		Entries:  make([]report.StatementEntry, 0, len(resolved)),
		Inflows:  valueobject.Zero(),
		Outflows: valueobject.Zero(),
	}
	for _, r := range resolved {
		mv := r.Movement
		entry := report.StatementEntry{
			MovementID:  mv.ID,
			Date:        mv.Date,
			Direction:   mv.Direction.DisplayName(),
			Amount:      mv.Amount,
			Description: mv.Description,
		}
		switch {
		case r.Order != nil:
			entry.Reference = "Serviço " + r.Order.Plate
		case r.Expense != nil:
			entry.Reference = "Despesa " + r.Expense.Description
		case mv.Reference.Kind == finance.ReferenceExpense:
			entry.Reference = "Despesa"
		}
		statement.Entries = append(statement.Entries, entry)

		if mv.IsInflow() {
			statement.Inflows = statement.Inflows.Add(mv.Amount)
		} else {
			statement.Outflows = statement.Outflows.Add(mv.Amount)
		}
	}
	statement.Balance = statement.Inflows.Sub(statement.Outflows)
	return statement, nil
}
