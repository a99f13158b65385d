package report

import (
	"time"

	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ReceivableRow is one order still owing money
type ReceivableRow struct {
	OrderID      uuid.UUID         `json:"order_id"`
	ClientID     uuid.UUID         `json:"client_id"`
	ClientName   string            `json:"client_name"`
	ServiceType  string            `json:"service_type"`
	Plate        string            `json:"plate"`
	ServiceDate  time.Time         `json:"service_date"`
	DueDate      *time.Time        `json:"due_date,omitempty"`
	BilledTotal  valueobject.Money `json:"billed_total"`
	Received     valueobject.Money `json:"received"`
	Outstanding  valueobject.Money `json:"outstanding"`
	PaymentLabel string            `json:"payment_label"`
}

// ReceivablesReport lists everything still to collect
type ReceivablesReport struct {
	Rows  []ReceivableRow   `json:"rows"`
	Total valueobject.Money `json:"total"`
}

// ExpenseRow is one expense in the expense report
type ExpenseRow struct {
	ExpenseID   uuid.UUID         `json:"expense_id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Amount      valueobject.Money `json:"amount"`
}

// ExpenseReport breaks down operating costs; Categories carries the
// distinct set present in the table for building filter choices
type ExpenseReport struct {
	Rows       []ExpenseRow      `json:"rows"`
	Total      valueobject.Money `json:"total"`
	Categories []string          `json:"categories"`
}

// StatementEntry is one ledger line in the cash statement
type StatementEntry struct {
	MovementID  uuid.UUID         `json:"movement_id"`
	Date        time.Time         `json:"date"`
	Direction   string            `json:"direction"`
	Amount      valueobject.Money `json:"amount"`
	Description string            `json:"description"`
	Reference   string            `json:"reference"`
}

// CashStatement is the extrato view over a period
type CashStatement struct {
	Entries  []StatementEntry  `json:"entries"`
	Inflows  valueobject.Money `json:"inflows"`
	Outflows valueobject.Money `json:"outflows"`
	Balance  valueobject.Money `json:"balance"`
}

// CashFlowReport is the managerial report over a period
type CashFlowReport struct {
	TotalBilled       valueobject.Money `json:"total_billed"`
	TotalReceived     valueobject.Money `json:"total_received"`
	TotalPending      valueobject.Money `json:"total_pending"`
	TotalInflows      valueobject.Money `json:"total_inflows"`
	TotalOutflowsCash valueobject.Money `json:"total_outflows_cash"`
	TotalExpenses     valueobject.Money `json:"total_expenses"`
	TotalOutflows     valueobject.Money `json:"total_outflows"`
	NetBalance        valueobject.Money `json:"net_balance"`
	OrderCount        int               `json:"order_count"`
	ClientCount       int               `json:"client_count"`
	ServiceTypes      []string          `json:"service_types"`
}

// RecentOrder is a dashboard row for a recently registered order
type RecentOrder struct {
	OrderID      uuid.UUID         `json:"order_id"`
	ClientName   string            `json:"client_name"`
	ServiceType  string            `json:"service_type"`
	Plate        string            `json:"plate"`
	ServiceDate  time.Time         `json:"service_date"`
	ProcessLabel string            `json:"process_label"`
	PaymentLabel string            `json:"payment_label"`
	Outstanding  valueobject.Money `json:"outstanding"`
}

// Dashboard carries the landing-page metrics
type Dashboard struct {
	OrdersInProgress int64             `json:"orders_in_progress"`
	ClientCount      int64             `json:"client_count"`
	Receivables      valueobject.Money `json:"receivables"`
	MonthInflows     valueobject.Money `json:"month_inflows"`
	RecentOrders     []RecentOrder     `json:"recent_orders"`
}
