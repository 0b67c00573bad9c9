package util

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderNumberFromUUID_Deterministic(t *testing.T) {
	id := uuid.MustParse("b3a7f9c2-4d1e-4a6b-9c8d-2e5f7a1b3c4d")
	first := OrderNumberFromUUID(id)
	assert.Equal(t, first, OrderNumberFromUUID(id))

	other := OrderNumberFromUUID(uuid.MustParse("00000000-0000-0000-0000-000000000001"))
	assert.NotEqual(t, first, other)
}

func TestNewOrderNumber(t *testing.T) {
	n := NewOrderNumber()
	require.NotEmpty(t, n)
	assert.LessOrEqual(t, len(n), 22)
	for _, c := range n {
		assert.True(t, c >= '0' && c <= '9', "order number must be numeric, got %q", n)
	}
}

func TestTruncateOrderID(t *testing.T) {
	assert.Equal(t, "abc", TruncateOrderID("abc"))
	assert.Equal(t, strings.Repeat("x", 22), TruncateOrderID(strings.Repeat("x", 30)))
	assert.Equal(t, "", TruncateOrderID(""))
}
