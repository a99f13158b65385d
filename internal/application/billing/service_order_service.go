package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/despachante/backend/internal/domain/billing"
	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/identity"
	"github.com/despachante/backend/internal/domain/partner"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// dateLayout is the wire format for all date fields
const dateLayout = "2006-01-02"

// parseDate parses an optional date filter; unparseable input leaves
// the bound unset instead of failing the request
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

// requireDate parses a mandatory date field
func requireDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// ServiceOrderService provides application-level service order operations
type ServiceOrderService struct {
	orders    billing.ServiceOrderRepository
	movements finance.CashMovementRepository
	clients   partner.ClientRepository
	tx        shared.TransactionManager
}

// NewServiceOrderService creates a new ServiceOrderService
func NewServiceOrderService(
	orders billing.ServiceOrderRepository,
	movements finance.CashMovementRepository,
	clients partner.ClientRepository,
	tx shared.TransactionManager,
) *ServiceOrderService {
	return &ServiceOrderService{
		orders:    orders,
		movements: movements,
		clients:   clients,
		tx:        tx,
	}
}

// LineItemRequest is one itemized billing entry on creation
type LineItemRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount"`
}

// CreateServiceOrderRequest represents a request to register a service order.
// Monetary fields carry user-typed BRL text ("1.200,50"); unparseable
// values read as zero.
type CreateServiceOrderRequest struct {
	ClientID       uuid.UUID         `json:"client_id" binding:"required"`
	ServiceType    string            `json:"service_type" binding:"required"`
	Plate          string            `json:"plate" binding:"required"`
	ServiceDate    string            `json:"service_date" binding:"required"`
	DueDate        string            `json:"due_date"`
	Details        string            `json:"details"`
	BilledTotal    string            `json:"billed_total"`
	AmountReceived string            `json:"amount_received"`
	LineItems      []LineItemRequest `json:"line_items"`
}

// RegisterPaymentRequest represents a payment against an order
type RegisterPaymentRequest struct {
	Amount      string `json:"amount" binding:"required"`
	PaymentDate string `json:"payment_date"`
	Method      string `json:"method"`
}

// UpdateProcessStatusRequest changes the workflow label
type UpdateProcessStatusRequest struct {
	ProcessStatus string `json:"process_status" binding:"required"`
}

// UpdateTotalsRequest manually corrects the ledger totals
type UpdateTotalsRequest struct {
	BilledTotal    string `json:"billed_total"`
	AmountReceived string `json:"amount_received"`
}

// ListOrdersRequest narrows the order listing
type ListOrdersRequest struct {
	ProcessStatus string `form:"process_status"`
	ClientID      string `form:"client_id"`
	Plate         string `form:"plate"`
	From          string `form:"from"`
	To            string `form:"to"`
}

// LineItemResponse is one itemized billing entry in responses
type LineItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	Description string            `json:"description"`
	Amount      valueobject.Money `json:"amount"`
}

// ServiceOrderResponse represents a service order in API responses
type ServiceOrderResponse struct {
	ID                  uuid.UUID          `json:"id"`
	ClientID            uuid.UUID          `json:"client_id"`
	ClientName          string             `json:"client_name,omitempty"`
	ServiceType         string             `json:"service_type"`
	Details             string             `json:"details,omitempty"`
	Plate               string             `json:"plate"`
	ServiceDate         time.Time          `json:"service_date"`
	DueDate             *time.Time         `json:"due_date,omitempty"`
	BilledTotal         valueobject.Money  `json:"billed_total"`
	AmountReceived      valueobject.Money  `json:"amount_received"`
	PendingBalance      valueobject.Money  `json:"pending_balance"`
	ProcessStatus       string             `json:"process_status"`
	ProcessStatusLabel  string             `json:"process_status_label"`
	PaymentStatus       string             `json:"payment_status"`
	PaymentStatusLabel  string             `json:"payment_status_label"`
	LineItems           []LineItemResponse `json:"line_items,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// ListOrdersResponse echoes the applied filters alongside the rows
type ListOrdersResponse struct {
	Orders  []ServiceOrderResponse `json:"orders"`
	Filters ListOrdersRequest      `json:"filters"`
}

// OpenOrdersResponse feeds the payment screen: orders still owing money
// plus, per client, the distinct plates for the filter dropdowns
type OpenOrdersResponse struct {
	Orders         []ServiceOrderResponse `json:"orders"`
	PlatesByClient map[string][]string    `json:"plates_by_client"`
}

// CreateServiceOrder registers a service order. When the amount received
// on creation is material, the initial receipt is appended to the cash
// log in the same transaction.
func (s *ServiceOrderService) CreateServiceOrder(ctx context.Context, _ identity.Actor, req CreateServiceOrderRequest) (*ServiceOrderResponse, error) {
	if _, err := s.clients.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}
	serviceDate, err := requireDate(req.ServiceDate)
	if err != nil {
		return nil, err
	}

	billed := valueobject.ParseBRL(req.BilledTotal)
	received := valueobject.ParseBRL(req.AmountReceived)

	order, err := billing.NewServiceOrder(req.ClientID, req.ServiceType, req.Plate, serviceDate, billed, received)
	if err != nil {
		return nil, err
	}
	order.SetDetails(req.Details)
	order.SetDueDate(parseDate(req.DueDate))
	for _, item := range req.LineItems {
		if err := order.AddLineItem(item.Description, valueobject.ParseBRL(item.Amount)); err != nil {
			return nil, err
		}
	}

	err = s.tx.Do(ctx, func(txCtx context.Context) error {
		if err := s.orders.Save(txCtx, order); err != nil {
			return err
		}
		if received.IsMaterial() {
			movement, err := finance.NewCashMovement(
				serviceDate,
				finance.DirectionInflow,
				received,
				fmt.Sprintf("Recebimento na contratação - %s %s", order.ServiceType, order.Plate),
				finance.ServiceReference(order.ID),
			)
			if err != nil {
				return err
			}
			return s.movements.Save(txCtx, movement)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, true), nil
}

// RegisterPayment increments the order's received total, rederives the
// ledger state and appends one Inflow movement, all atomically.
func (s *ServiceOrderService) RegisterPayment(ctx context.Context, _ identity.Actor, orderID uuid.UUID, req RegisterPaymentRequest) (*ServiceOrderResponse, error) {
	amount := valueobject.ParseBRL(req.Amount)
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.RegisterPayment(amount); err != nil {
		return nil, err
	}

	date := today()
	if d := parseDate(req.PaymentDate); d != nil {
		date = *d
	}
	description := fmt.Sprintf("Recebimento - %s %s", order.ServiceType, order.Plate)
	if req.Method != "" {
		description = fmt.Sprintf("%s (%s)", description, req.Method)
	}

	err = s.tx.Do(ctx, func(txCtx context.Context) error {
		if err := s.orders.Save(txCtx, order); err != nil {
			return err
		}
		movement, err := finance.NewCashMovement(date, finance.DirectionInflow, amount,
			description, finance.ServiceReference(order.ID))
		if err != nil {
			return err
		}
		return s.movements.Save(txCtx, movement)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, true), nil
}

// UpdateProcessStatus sets the workflow label
func (s *ServiceOrderService) UpdateProcessStatus(ctx context.Context, _ identity.Actor, orderID uuid.UUID, req UpdateProcessStatusRequest) (*ServiceOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.SetProcessStatus(billing.ProcessStatus(req.ProcessStatus)); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, true), nil
}

// UpdateTotals manually corrects the ledger totals; the payment status
// is rederived in the same write
func (s *ServiceOrderService) UpdateTotals(ctx context.Context, _ identity.Actor, orderID uuid.UUID, req UpdateTotalsRequest) (*ServiceOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateTotals(valueobject.ParseBRL(req.BilledTotal), valueobject.ParseBRL(req.AmountReceived)); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, true), nil
}

// DeleteServiceOrder removes the order and its line items in one
// transaction. Admin only. The order's cash movements stay in the log
// for audit continuity; their references dangle and the resolver keeps
// them out of reports.
func (s *ServiceOrderService) DeleteServiceOrder(ctx context.Context, actor identity.Actor, orderID uuid.UUID) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return err
	}
	return s.tx.Do(ctx, func(txCtx context.Context) error {
		return s.orders.Delete(txCtx, orderID)
	})
}

// GetServiceOrder fetches one order with its line items
func (s *ServiceOrderService) GetServiceOrder(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, true), nil
}

// ListServiceOrders lists orders matching the filter, echoing it back
func (s *ServiceOrderService) ListServiceOrders(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	filter := billing.ListFilter{
		Plate: req.Plate,
		From:  parseDate(req.From),
		To:    parseDate(req.To),
	}
	if req.ProcessStatus != "" {
		status := billing.ProcessStatus(req.ProcessStatus)
		if status.IsValid() {
			filter.ProcessStatus = &status
		}
	}
	if id, err := uuid.Parse(req.ClientID); err == nil {
		filter.ClientID = &id
	}

	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListOrdersResponse{
		Orders:  s.toResponses(ctx, orders),
		Filters: req,
	}, nil
}

// ListOpenOrders lists orders with a material pending balance for the
// payment screen, with the distinct plates of each client
func (s *ServiceOrderService) ListOpenOrders(ctx context.Context, req ListOrdersRequest) (*OpenOrdersResponse, error) {
	filter := billing.ReceivablesFilter{
		Plate: req.Plate,
		From:  parseDate(req.From),
		To:    parseDate(req.To),
	}
	if id, err := uuid.Parse(req.ClientID); err == nil {
		filter.ClientID = &id
	}

	orders, err := s.orders.FindOpen(ctx, filter)
	if err != nil {
		return nil, err
	}
	plates, err := s.orders.DistinctPlatesByClient(ctx)
	if err != nil {
		return nil, err
	}
	byClient := make(map[string][]string, len(plates))
	for clientID, ps := range plates {
		byClient[clientID.String()] = ps
	}
	return &OpenOrdersResponse{
		Orders:         s.toResponses(ctx, orders),
		PlatesByClient: byClient,
	}, nil
}

// clientNames maps client IDs to display names, tolerating lookup
// failures with an empty map
func (s *ServiceOrderService) clientNames(ctx context.Context) map[uuid.UUID]string {
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

func (s *ServiceOrderService) toResponses(ctx context.Context, orders []billing.ServiceOrder) []ServiceOrderResponse {
	names := s.clientNames(ctx)
	out := make([]ServiceOrderResponse, 0, len(orders))
	for i := range orders {
		resp := toServiceOrderResponse(&orders[i], false)
		resp.ClientName = names[orders[i].ClientID]
		out = append(out, *resp)
	}
	return out
}

func (s *ServiceOrderService) toResponse(ctx context.Context, order *billing.ServiceOrder, withItems bool) *ServiceOrderResponse {
	resp := toServiceOrderResponse(order, withItems)
	if client, err := s.clients.FindByID(ctx, order.ClientID); err == nil {
		resp.ClientName = client.Name
	}
	return resp
}

func toServiceOrderResponse(o *billing.ServiceOrder, withItems bool) *ServiceOrderResponse {
	resp := &ServiceOrderResponse{
		ID:                 o.ID,
		ClientID:           o.ClientID,
		ServiceType:        o.ServiceType,
		Details:            o.Details,
		Plate:              o.Plate,
		ServiceDate:        o.ServiceDate,
		DueDate:            o.DueDate,
		BilledTotal:        o.BilledTotal,
		AmountReceived:     o.AmountReceived,
		PendingBalance:     o.PendingBalance,
		ProcessStatus:      o.ProcessStatus.String(),
		ProcessStatusLabel: o.ProcessStatus.DisplayName(),
		PaymentStatus:      o.PaymentStatus.String(),
		PaymentStatusLabel: o.PaymentStatus.DisplayName(),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if withItems {
		for _, item := range o.LineItems {
			resp.LineItems = append(resp.LineItems, LineItemResponse{
				ID:          item.ID,
				Description: item.Description,
				Amount:      item.Amount,
			})
		}
	}
	return resp
}
