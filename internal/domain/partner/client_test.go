package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with required fields", func(t *testing.T) {
		c, err := NewClient("Maria Souza", "123.456.789-00")
		require.NoError(t, err)
		assert.Equal(t, "Maria Souza", c.Name)
		assert.Equal(t, "123.456.789-00", c.TaxID)
		assert.NotEqual(t, c.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		c, err := NewClient("  João Lima  ", " 98.765.432/0001-10 ")
		require.NoError(t, err)
		assert.Equal(t, "João Lima", c.Name)
		assert.Equal(t, "98.765.432/0001-10", c.TaxID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewClient("   ", "123")
		assert.Error(t, err)
	})

	t.Run("rejects empty tax id", func(t *testing.T) {
		_, err := NewClient("Maria", "")
		assert.Error(t, err)
	})

	t.Run("rejects oversized name", func(t *testing.T) {
		_, err := NewClient(strings.Repeat("a", 201), "123")
		assert.Error(t, err)
	})
}

func TestClientUpdate(t *testing.T) {
	c, err := NewClient("Maria", "111")
	require.NoError(t, err)

	require.NoError(t, c.Update("Maria Souza", "222"))
	assert.Equal(t, "Maria Souza", c.Name)
	assert.Equal(t, "222", c.TaxID)

	assert.Error(t, c.Update("", "222"))
	assert.Error(t, c.Update("Maria", ""))
}

func TestClientSetContact(t *testing.T) {
	c, err := NewClient("Maria", "111")
	require.NoError(t, err)

	c.SetContact(" (11) 99999-0000 ", "maria@example.com", "Rua A, 10")
	assert.Equal(t, "(11) 99999-0000", c.Phone)
	assert.Equal(t, "maria@example.com", c.Email)
	assert.Equal(t, "Rua A, 10", c.Address)
}
