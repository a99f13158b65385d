package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"full notation", "R$ 1.200,50", 1200.50},
		{"no symbol", "1.200,50", 1200.50},
		{"comma decimal only", "350,00", 350.00},
		{"integer", "500", 500},
		{"symbol without space", "R$75,90", 75.90},
		{"thousands groups", "R$ 1.234.567,89", 1234567.89},
		{"empty string", "", 0},
		{"whitespace only", "   ", 0},
		{"garbage", "abc", 0},
		{"partial garbage", "R$ 12a,00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ParseBRL(tt.input)
			assert.True(t, m.Amount().Equal(decimal.NewFromFloat(tt.want)),
				"got %s, want %v", m.Amount(), tt.want)
		})
	}
}

func TestParseBRLDotIsThousandsSeparator(t *testing.T) {
	// "1200.50" reads as 1.200.50 grouped, i.e. 120050: the dot is never
	// a decimal mark in this locale.
	m := ParseBRL("1200.50")
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(120050)))
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"with thousands", 1234.56, "R$ 1.234,56"},
		{"zero", 0, "R$ 0,00"},
		{"round trip", 1200.50, "R$ 1.200,50"},
		{"negative", -45.30, "R$ -45,30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMoneyFromFloat(tt.amount).FormatBRL())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100.50)
	b := NewMoneyFromFloat(30.25)

	assert.True(t, a.Add(b).Amount().Equal(decimal.NewFromFloat(130.75)))
	assert.True(t, a.Sub(b).Amount().Equal(decimal.NewFromFloat(70.25)))
	assert.True(t, b.Neg().Amount().Equal(decimal.NewFromFloat(-30.25)))
	assert.True(t, a.GreaterThan(b))
	assert.True(t, b.LessThanOrEqual(a))
	assert.True(t, a.Equals(NewMoneyFromFloat(100.50)))
}

func TestMoneyIsMaterial(t *testing.T) {
	assert.False(t, Zero().IsMaterial())
	assert.False(t, NewMoneyFromFloat(0.01).IsMaterial())
	assert.True(t, NewMoneyFromFloat(0.02).IsMaterial())
	assert.False(t, NewMoneyFromFloat(-5).IsMaterial())
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(NewMoneyFromFloat(1200.5))
	require.NoError(t, err)
	assert.Equal(t, "1200.50", string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"99.90"`), &m))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.90)))

	require.NoError(t, json.Unmarshal([]byte(`42.10`), &m))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(42.10)))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("15.75"))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(15.75)))

	require.NoError(t, m.Scan(float64(8.2)))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(8.2)))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(true))
}
