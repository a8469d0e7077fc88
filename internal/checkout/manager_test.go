package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

func TestManager(t *testing.T) {
	m, err := NewManager(2, Dependencies{Pricing: cart.DefaultPricing()})
	require.NoError(t, err)

	store := cart.NewStore()
	first := m.Get("visitor-a", store)
	assert.Same(t, first, m.Get("visitor-a", store))

	fresh := m.Begin("visitor-a", store)
	assert.NotSame(t, first, fresh)
	assert.NotEqual(t, first.ID(), fresh.ID())
	assert.Same(t, fresh, m.Get("visitor-a", store))

	m.End("visitor-a")
	assert.Equal(t, 0, m.Len())
	assert.NotSame(t, fresh, m.Get("visitor-a", store))
}

func TestManagerGetRebindsCart(t *testing.T) {
	m, err := NewManager(2, Dependencies{Pricing: cart.DefaultPricing()})
	require.NoError(t, err)

	stale := cart.NewStore()
	s := m.Get("visitor-a", stale)

	live := cart.NewStore()
	live.Dispatch(context.Background(), cart.AddItem{Item: cart.NewItem{
		ProductID: "p1", Name: "Tee", Price: decimal.NewFromInt(20), Size: "M", Quantity: 1,
	}})
	assert.Same(t, s, m.Get("visitor-a", live))
	assert.Len(t, s.View().Items, 1)
}

func TestManagerEvictsOldest(t *testing.T) {
	m, err := NewManager(2, Dependencies{})
	require.NoError(t, err)

	store := cart.NewStore()
	a := m.Get("a", store)
	m.Get("b", store)
	m.Get("c", store)

	assert.Equal(t, 2, m.Len())
	assert.NotSame(t, a, m.Get("a", store))
}

func TestNewManagerRejectsBadSize(t *testing.T) {
	_, err := NewManager(0, Dependencies{})
	require.Error(t, err)
}
