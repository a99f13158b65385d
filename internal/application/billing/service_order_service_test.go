package billing

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/despachante/backend/internal/domain/billing"
	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/domain/identity"
	"github.com/despachante/backend/internal/domain/partner"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughTx runs the unit of work without a real database
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*billing.ServiceOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*billing.ServiceOrder)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.ServiceOrder, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindAll(_ context.Context, filter billing.ListFilter) ([]billing.ServiceOrder, error) {
	out := make([]billing.ServiceOrder, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.ProcessStatus != nil && o.ProcessStatus != *filter.ProcessStatus {
			continue
		}
		if filter.ClientID != nil && o.ClientID != *filter.ClientID {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) FindOpen(_ context.Context, _ billing.ReceivablesFilter) ([]billing.ServiceOrder, error) {
	var out []billing.ServiceOrder
	for _, o := range r.orders {
		if o.HasPendingBalance() {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindReceivables(_ context.Context, _ billing.ReceivablesFilter) ([]billing.ServiceOrder, error) {
	var out []billing.ServiceOrder
	for _, o := range r.orders {
		if o.BilledTotal.GreaterThan(o.AmountReceived) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindForCashFlow(_ context.Context, _ billing.CashFlowFilter) ([]billing.ServiceOrder, error) {
	return nil, nil
}

func (r *fakeOrderRepo) FindRecent(_ context.Context, _ int) ([]billing.ServiceOrder, error) {
	return nil, nil
}

func (r *fakeOrderRepo) CountByProcessStatus(_ context.Context, _ ...billing.ProcessStatus) (int64, error) {
	return 0, nil
}

func (r *fakeOrderRepo) SumPendingByPaymentStatus(_ context.Context, _ ...billing.PaymentStatus) (valueobject.Money, error) {
	return valueobject.Zero(), nil
}

func (r *fakeOrderRepo) DistinctServiceTypes(_ context.Context) ([]string, error) {
	return nil, nil
}

func (r *fakeOrderRepo) DistinctPlatesByClient(_ context.Context) (map[uuid.UUID][]string, error) {
	plates := make(map[uuid.UUID][]string)
	for _, o := range r.orders {
		plates[o.ClientID] = append(plates[o.ClientID], o.Plate)
	}
	return plates, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *billing.ServiceOrder) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

type fakeMovementRepo struct {
	movements []finance.CashMovement
	saveErr   error
}

func (r *fakeMovementRepo) Save(_ context.Context, mv *finance.CashMovement) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.movements = append(r.movements, *mv)
	return nil
}

func (r *fakeMovementRepo) FindByPeriod(_ context.Context, _, _ *time.Time) ([]finance.CashMovement, error) {
	return r.movements, nil
}

func (r *fakeMovementRepo) SumInflowsSince(_ context.Context, _ time.Time) (valueobject.Money, error) {
	return valueobject.Zero(), nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*partner.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*partner.Client)}
}

func (r *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Client, error) {
	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeClientRepo) FindByTaxID(_ context.Context, _ string) (*partner.Client, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeClientRepo) FindAll(_ context.Context) ([]partner.Client, error) {
	var out []partner.Client
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClientRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.clients)), nil
}

func (r *fakeClientRepo) Save(_ context.Context, c *partner.Client) error {
	r.clients[c.ID] = c
	return nil
}

func testService(t *testing.T) (*ServiceOrderService, *fakeOrderRepo, *fakeMovementRepo, uuid.UUID) {
	t.Helper()
	orders := newFakeOrderRepo()
	movements := &fakeMovementRepo{}
	clients := newFakeClientRepo()
	client, err := partner.NewClient("Maria", "111")
	require.NoError(t, err)
	require.NoError(t, clients.Save(context.Background(), client))
	svc := NewServiceOrderService(orders, movements, clients, passthroughTx{})
	return svc, orders, movements, client.ID
}

func adminActor() identity.Actor {
	return identity.Actor{ID: uuid.New(), Name: "Ana", Role: identity.RoleAdmin}
}

func collaboratorActor() identity.Actor {
	return identity.Actor{ID: uuid.New(), Name: "Beto", Role: identity.RoleCollaborator}
}

func TestCreateServiceOrder(t *testing.T) {
	t.Run("material initial receipt appends an inflow movement", func(t *testing.T) {
		svc, orders, movements, clientID := testService(t)

		resp, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID:       clientID,
			ServiceType:    "Transferência",
			Plate:          "abc1d23",
			ServiceDate:    "2025-03-10",
			BilledTotal:    "1.000,00",
			AmountReceived: "200,00",
			LineItems: []LineItemRequest{
				{Description: "Taxa Detran", Amount: "400,00"},
				{Description: "Honorários", Amount: "600,00"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "ABC1D23", resp.Plate)
		assert.Equal(t, "partial", resp.PaymentStatus)
		assert.InDelta(t, 800, resp.PendingBalance.Float64(), 1e-9)
		assert.Len(t, resp.LineItems, 2)

		require.Len(t, movements.movements, 1)
		mv := movements.movements[0]
		assert.Equal(t, finance.DirectionInflow, mv.Direction)
		assert.InDelta(t, 200, mv.Amount.Float64(), 1e-9)
		assert.Equal(t, finance.ReferenceService, mv.Reference.Kind)
		assert.Equal(t, resp.ID, *mv.Reference.ID)

		_, err = orders.FindByID(context.Background(), resp.ID)
		assert.NoError(t, err)
	})

	t.Run("no movement when received is within tolerance", func(t *testing.T) {
		svc, _, movements, clientID := testService(t)

		resp, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID:    clientID,
			ServiceType: "Licenciamento",
			Plate:       "XYZ9A88",
			ServiceDate: "2025-03-10",
			BilledTotal: "150,00",
		})
		require.NoError(t, err)
		assert.Equal(t, "to_bill", resp.PaymentStatus)
		assert.Empty(t, movements.movements)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		svc, _, _, _ := testService(t)
		_, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID:    uuid.New(),
			ServiceType: "Licenciamento",
			Plate:       "XYZ9A88",
			ServiceDate: "2025-03-10",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects invalid service date", func(t *testing.T) {
		svc, _, _, clientID := testService(t)
		_, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID:    clientID,
			ServiceType: "Licenciamento",
			Plate:       "XYZ9A88",
			ServiceDate: "10/03/2025",
		})
		assert.Error(t, err)
	})
}

func TestRegisterPaymentFlow(t *testing.T) {
	t.Run("updates ledger and appends one inflow", func(t *testing.T) {
		svc, _, movements, clientID := testService(t)
		created, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID:       clientID,
			ServiceType:    "Transferência",
			Plate:          "ABC1D23",
			ServiceDate:    "2025-03-10",
			BilledTotal:    "1.000,00",
			AmountReceived: "200,00",
		})
		require.NoError(t, err)

		resp, err := svc.RegisterPayment(context.Background(), collaboratorActor(), created.ID, RegisterPaymentRequest{
			Amount:      "500,00",
			PaymentDate: "2025-03-15",
			Method:      "Pix",
		})
		require.NoError(t, err)
		assert.InDelta(t, 700, resp.AmountReceived.Float64(), 1e-9)
		assert.InDelta(t, 300, resp.PendingBalance.Float64(), 1e-9)
		assert.Equal(t, "partial", resp.PaymentStatus)

		require.Len(t, movements.movements, 2)
		payment := movements.movements[1]
		assert.InDelta(t, 500, payment.Amount.Float64(), 1e-9)
		assert.Contains(t, payment.Description, "Pix")
		assert.Equal(t, created.ID, *payment.Reference.ID)
	})

	t.Run("defaults the payment date to the current day", func(t *testing.T) {
		svc, _, movements, clientID := testService(t)
		created, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID: clientID, ServiceType: "T", Plate: "AAA0A00", ServiceDate: "2025-03-10", BilledTotal: "100,00",
		})
		require.NoError(t, err)

		_, err = svc.RegisterPayment(context.Background(), collaboratorActor(), created.ID, RegisterPaymentRequest{Amount: "100,00"})
		require.NoError(t, err)

		require.Len(t, movements.movements, 1)
		mv := movements.movements[0]
		assert.True(t, mv.Date.Equal(mv.Date.Truncate(24*time.Hour)), "movement date carries time of day: %v", mv.Date)

		// a statement bounded by today's date must still cover it
		bound, err := time.Parse(dateLayout, time.Now().UTC().Format(dateLayout))
		require.NoError(t, err)
		assert.False(t, mv.Date.After(bound))
	})

	t.Run("rejects unparseable amount", func(t *testing.T) {
		svc, _, movements, clientID := testService(t)
		created, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID: clientID, ServiceType: "T", Plate: "AAA0A00", ServiceDate: "2025-03-10", BilledTotal: "100,00",
		})
		require.NoError(t, err)

		_, err = svc.RegisterPayment(context.Background(), collaboratorActor(), created.ID, RegisterPaymentRequest{Amount: "abc"})
		assert.Error(t, err)
		assert.Empty(t, movements.movements)
	})
}

func TestDeleteServiceOrder(t *testing.T) {
	t.Run("admin delete keeps historical movements in the log", func(t *testing.T) {
		svc, orders, movements, clientID := testService(t)
		created, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID: clientID, ServiceType: "T", Plate: "AAA0A00",
			ServiceDate: "2025-03-10", BilledTotal: "100,00", AmountReceived: "100,00",
		})
		require.NoError(t, err)
		require.Len(t, movements.movements, 1)

		require.NoError(t, svc.DeleteServiceOrder(context.Background(), adminActor(), created.ID))

		_, err = orders.FindByID(context.Background(), created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		// the initial receipt stays, its reference now dangling
		require.Len(t, movements.movements, 1)
		receipt := movements.movements[0]
		assert.Equal(t, finance.ReferenceService, receipt.Reference.Kind)
		assert.Equal(t, created.ID, *receipt.Reference.ID)
	})

	t.Run("collaborator is forbidden", func(t *testing.T) {
		svc, _, _, clientID := testService(t)
		created, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
			ClientID: clientID, ServiceType: "T", Plate: "AAA0A00", ServiceDate: "2025-03-10",
		})
		require.NoError(t, err)

		err = svc.DeleteServiceOrder(context.Background(), collaboratorActor(), created.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestUpdateTotalsRecomputesStatus(t *testing.T) {
	svc, _, _, clientID := testService(t)
	created, err := svc.CreateServiceOrder(context.Background(), collaboratorActor(), CreateServiceOrderRequest{
		ClientID: clientID, ServiceType: "T", Plate: "AAA0A00",
		ServiceDate: "2025-03-10", BilledTotal: "100,00", AmountReceived: "100,00",
	})
	require.NoError(t, err)
	require.Equal(t, "paid", created.PaymentStatus)

	resp, err := svc.UpdateTotals(context.Background(), collaboratorActor(), created.ID, UpdateTotalsRequest{
		BilledTotal:    "300,00",
		AmountReceived: "100,00",
	})
	require.NoError(t, err)
	assert.Equal(t, "partial", resp.PaymentStatus)
	assert.InDelta(t, 200, resp.PendingBalance.Float64(), 1e-9)
}
