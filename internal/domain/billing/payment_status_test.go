package billing

import (
	"testing"

	"github.com/despachante/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
)

func TestLedgerState(t *testing.T) {
	tests := []struct {
		name        string
		billed      float64
		received    float64
		wantPending float64
		wantStatus  PaymentStatus
	}{
		{"nothing billed", 0, 0, 0, PaymentNotBilled},
		{"billed within tolerance", 0.01, 0, 0.01, PaymentNotBilled},
		{"billed within tolerance but received", 0.01, 5, -4.99, PaymentNotBilled},
		{"fully paid", 100, 100, 0, PaymentPaid},
		{"paid within tolerance", 100, 99.995, 0.005, PaymentPaid},
		{"overpaid keeps negative pending", 100, 150, -50, PaymentPaid},
		{"partial payment", 1000, 200, 800, PaymentPartial},
		{"received within tolerance is not partial", 1000, 0.01, 999.99, PaymentToBill},
		{"nothing received", 350, 0, 350, PaymentToBill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pending, status := LedgerState(
				valueobject.NewMoneyFromFloat(tt.billed),
				valueobject.NewMoneyFromFloat(tt.received),
			)
			assert.Equal(t, tt.wantStatus, status)
			assert.InDelta(t, tt.wantPending, pending.Float64(), 1e-9)
		})
	}
}

func TestLedgerStateIsTotal(t *testing.T) {
	// every pair maps to exactly one status, including odd corners
	values := []float64{-10, 0, 0.01, 0.02, 1, 99.99, 100, 1000}
	for _, b := range values {
		for _, r := range values {
			_, status := LedgerState(
				valueobject.NewMoneyFromFloat(b),
				valueobject.NewMoneyFromFloat(r),
			)
			assert.True(t, status.IsValid(), "billed=%v received=%v", b, r)
		}
	}
}

func TestPaymentStatusDisplayName(t *testing.T) {
	assert.Equal(t, "Não Cobrado", PaymentNotBilled.DisplayName())
	assert.Equal(t, "A Cobrar", PaymentToBill.DisplayName())
	assert.Equal(t, "Parcial", PaymentPartial.DisplayName())
	assert.Equal(t, "Pago", PaymentPaid.DisplayName())
}

func TestProcessStatusIsValid(t *testing.T) {
	for _, s := range []ProcessStatus{ProcessPending, ProcessInProgress, ProcessAwaitingPickup, ProcessCompleted, ProcessCancelled} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, ProcessStatus("shipped").IsValid())
}
