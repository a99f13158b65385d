package billing

import (
	"github.com/despachante/backend/internal/domain/shared/valueobject"
)

// PaymentStatus is the derived classification of an order's billing state.
// It is a pure function of the billed and received totals (see LedgerState)
// and is persisted only as a cache of that function.
type PaymentStatus string

const (
	PaymentNotBilled PaymentStatus = "not_billed"
	PaymentToBill    PaymentStatus = "to_bill"
	PaymentPartial   PaymentStatus = "partial"
	PaymentPaid      PaymentStatus = "paid"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentNotBilled, PaymentToBill, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

// DisplayName returns the Portuguese label shown to users
func (s PaymentStatus) DisplayName() string {
	switch s {
	case PaymentNotBilled:
		return "Não Cobrado"
	case PaymentToBill:
		return "A Cobrar"
	case PaymentPartial:
		return "Parcial"
	case PaymentPaid:
		return "Pago"
	}
	return string(s)
}

// LedgerState derives the pending balance and payment status from the
// billed and received totals. The branches are evaluated in this fixed
// tie-break order; the cent tolerance absorbs rounding drift from
// repeated currency arithmetic. The pending balance is the raw
// difference and may be negative on overpayment.
func LedgerState(billed, received valueobject.Money) (valueobject.Money, PaymentStatus) {
	pending := billed.Sub(received)
	switch {
	case !billed.IsMaterial():
		return pending, PaymentNotBilled
	case !pending.IsMaterial():
		return pending, PaymentPaid
	case received.IsMaterial():
		return pending, PaymentPartial
	default:
		return pending, PaymentToBill
	}
}
