package report

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/billing"
	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/partner"
	"github.com/despachante/backend/internal/domain/report"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
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

// AggregationService builds the financial reports and the dashboard
type AggregationService struct {
	orders    billing.ServiceOrderRepository
	movements finance.CashMovementRepository
	expenses  finance.ExpenseRepository
	clients   partner.ClientRepository
	resolver  *finance.ReferenceResolver
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	orders billing.ServiceOrderRepository,
	movements finance.CashMovementRepository,
	expenses finance.ExpenseRepository,
	clients partner.ClientRepository,
	resolver *finance.ReferenceResolver,
) *AggregationService {
	return &AggregationService{
		orders:    orders,
		movements: movements,
		expenses:  expenses,
		clients:   clients,
		resolver:  resolver,
	}
}

// ReceivablesRequest narrows the receivables report
type ReceivablesRequest struct {
	ClientID string `form:"client_id"`
	Plate    string `form:"plate"`
	From     string `form:"from"`
	To       string `form:"to"`
}

// ExpensesRequest narrows the expense report
type ExpensesRequest struct {
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
}

// CashFlowRequest narrows the managerial report
type CashFlowRequest struct {
	ClientID    string `form:"client_id"`
	ServiceType string `form:"service_type"`
	From        string `form:"from"`
	To          string `form:"to"`
}

// Receivables reports every order still owing money: billed total above
// amount received, oldest service date first, with a summation total.
func (s *AggregationService) Receivables(ctx context.Context, req ReceivablesRequest) (*report.ReceivablesReport, error) {
	filter := billing.ReceivablesFilter{
		Plate: req.Plate,
		From:  parseDate(req.From),
		To:    parseDate(req.To),
	}
	if id, err := uuid.Parse(req.ClientID); err == nil {
		filter.ClientID = &id
	}

	orders, err := s.orders.FindReceivables(ctx, filter)
	if err != nil {
		return nil, err
	}
	names := s.clientNames(ctx)

	out := &report.ReceivablesReport{
		Rows:  make([]report.ReceivableRow, 0, len(orders)),
		Total: valueobject.Zero(),
	}
	for i := range orders {
		o := &orders[i]
		outstanding := o.BilledTotal.Sub(o.AmountReceived)
		out.Rows = append(out.Rows, report.ReceivableRow{
			OrderID:      o.ID,
			ClientID:     o.ClientID,
			ClientName:   names[o.ClientID],
			ServiceType:  o.ServiceType,
			Plate:        o.Plate,
			ServiceDate:  o.ServiceDate,
			DueDate:      o.DueDate,
			BilledTotal:  o.BilledTotal,
			Received:     o.AmountReceived,
			Outstanding:  outstanding,
			PaymentLabel: o.PaymentStatus.DisplayName(),
		})
		out.Total = out.Total.Add(outstanding)
	}
	return out, nil
}

// Expenses reports operating costs in the period with a summation total
// and the distinct categories present in the table
func (s *AggregationService) Expenses(ctx context.Context, req ExpensesRequest) (*report.ExpenseReport, error) {
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

	out := &report.ExpenseReport{
		Rows:       make([]report.ExpenseRow, 0, len(expenses)),
		Total:      valueobject.Zero(),
		Categories: categories,
	}
	for i := range expenses {
		e := &expenses[i]
		out.Rows = append(out.Rows, report.ExpenseRow{
			ExpenseID:   e.ID,
			Date:        e.Date,
			Description: e.Description,
			Category:    e.Category,
			Amount:      e.Amount,
		})
		out.Total = out.Total.Add(e.Amount)
	}
	return out, nil
}

// CashFlow builds the managerial report. A movement counts as an inflow
// when its direction says so or when it references a live service
// order: payment entries are identifiable by their reference even when
// mis-tagged, so the reference wins over the label when they disagree.
func (s *AggregationService) CashFlow(ctx context.Context, req CashFlowRequest) (*report.CashFlowReport, error) {
	filter := billing.CashFlowFilter{
		ServiceType: req.ServiceType,
		From:        parseDate(req.From),
		To:          parseDate(req.To),
	}
	var clientID *uuid.UUID
	if id, err := uuid.Parse(req.ClientID); err == nil {
		clientID = &id
		filter.ClientID = &id
	}

	orders, err := s.orders.FindForCashFlow(ctx, filter)
	if err != nil {
		return nil, err
	}
	movements, err := s.movements.FindByPeriod(ctx, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	resolved := s.resolver.ResolveAll(ctx, movements, clientID)
	expenses, err := s.expenses.FindFiltered(ctx, finance.ExpenseFilter{
		From: filter.From,
		To:   filter.To,
	})
	if err != nil {
		return nil, err
	}
	serviceTypes, err := s.orders.DistinctServiceTypes(ctx)
	if err != nil {
		return nil, err
	}

	out := &report.CashFlowReport{
		TotalBilled:       valueobject.Zero(),
		TotalReceived:     valueobject.Zero(),
		TotalInflows:      valueobject.Zero(),
		TotalOutflowsCash: valueobject.Zero(),
		TotalExpenses:     valueobject.Zero(),
		OrderCount:        len(orders),
		ServiceTypes:      serviceTypes,
	}

	clientSet := make(map[uuid.UUID]struct{})
	for i := range orders {
		out.TotalBilled = out.TotalBilled.Add(orders[i].BilledTotal)
		out.TotalReceived = out.TotalReceived.Add(orders[i].AmountReceived)
		clientSet[orders[i].ClientID] = struct{}{}
	}
	out.TotalPending = out.TotalBilled.Sub(out.TotalReceived)
	out.ClientCount = len(clientSet)

	for _, r := range resolved {
		mv := r.Movement
		if mv.IsInflow() || r.ReferencesService() {
			out.TotalInflows = out.TotalInflows.Add(mv.Amount)
		}
		if !mv.IsInflow() {
			out.TotalOutflowsCash = out.TotalOutflowsCash.Add(mv.Amount)
		}
	}
	for i := range expenses {
		out.TotalExpenses = out.TotalExpenses.Add(expenses[i].Amount)
	}

	out.TotalOutflows = out.TotalOutflowsCash.Add(out.TotalExpenses)
	out.NetBalance = out.TotalInflows.Sub(out.TotalOutflows)
	return out, nil
}

// Dashboard assembles the landing-page metrics
func (s *AggregationService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	inProgress, err := s.orders.CountByProcessStatus(ctx, billing.OpenStatuses()...)
	if err != nil {
		return nil, err
	}
	clientCount, err := s.clients.Count(ctx)
	if err != nil {
		return nil, err
	}
	receivables, err := s.orders.SumPendingByPaymentStatus(ctx, billing.PaymentToBill, billing.PaymentPartial)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthInflows, err := s.movements.SumInflowsSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	recent, err := s.orders.FindRecent(ctx, 5)
	if err != nil {
		return nil, err
	}
	names := s.clientNames(ctx)

	dash := &report.Dashboard{
		OrdersInProgress: inProgress,
		ClientCount:      clientCount,
		Receivables:      receivables,
		MonthInflows:     monthInflows,
		RecentOrders:     make([]report.RecentOrder, 0, len(recent)),
	}
	for i := range recent {
		o := &recent[i]
		dash.RecentOrders = append(dash.RecentOrders, report.RecentOrder{
			OrderID:      o.ID,
			ClientName:   names[o.ClientID],
			ServiceType:  o.ServiceType,
			Plate:        o.Plate,
			ServiceDate:  o.ServiceDate,
			ProcessLabel: o.ProcessStatus.DisplayName(),
			PaymentLabel: o.PaymentStatus.DisplayName(),
			Outstanding:  o.PendingBalance,
		})
	}
	return dash, nil
}

func (s *AggregationService) clientNames(ctx context.Context) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	clients, err := s.clients.FindAll(ctx)
	if err != nil {
		return names
	}
	for i := range clients {
		names[clients[i].ID] = clients[i].Name
	}
	return names
}
