package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.UnixMilli(1_700_000_000_000)

func newItem(productID, size, price string, qty int) NewItem {
	return NewItem{
		ProductID: productID,
		Name:      "Product " + productID,
		Price:     decimal.RequireFromString(price),
		Size:      size,
		Quantity:  qty,
	}
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestReduce_AddItem(t *testing.T) {
	t.Run("merges same product and size", func(t *testing.T) {
		s := Reduce(State{}, AddItem{Item: newItem("P1", "M", "20", 2)}, testNow)
		s = Reduce(s, AddItem{Item: newItem("P1", "M", "20", 3)}, testNow.Add(time.Second))

		require.Len(t, s.Items, 1)
		assert.Equal(t, 5, s.Items[0].Quantity)
		assert.Equal(t, "P1-M-1700000000000", s.Items[0].ID)
	})

	t.Run("different size is a separate row", func(t *testing.T) {
		s := Reduce(State{}, AddItem{Item: newItem("P1", "M", "20", 1)}, testNow)
		s = Reduce(s, AddItem{Item: newItem("P1", "L", "20", 1)}, testNow)

		require.Len(t, s.Items, 2)
		assert.NotEqual(t, s.Items[0].ID, s.Items[1].ID)
	})

	t.Run("clamps merged quantity to max", func(t *testing.T) {
		s := State{}
		for i := 0; i < 4; i++ {
			s = Reduce(s, AddItem{Item: newItem("P1", "M", "20", 4)}, testNow)
		}
		require.Len(t, s.Items, 1)
		assert.Equal(t, MaxQuantity, s.Items[0].Quantity)
	})

	t.Run("floors new row quantity to min", func(t *testing.T) {
		s := Reduce(State{}, AddItem{Item: newItem("P1", "M", "20", 0)}, testNow)
		assert.Equal(t, MinQuantity, s.Items[0].Quantity)
	})

	t.Run("opens the cart", func(t *testing.T) {
		s := Reduce(State{}, AddItem{Item: newItem("P1", "M", "20", 1)}, testNow)
		assert.True(t, s.IsOpen)
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		s := Reduce(State{}, AddItem{Item: newItem("B", "M", "1", 1)}, testNow)
		s = Reduce(s, AddItem{Item: newItem("A", "M", "1", 1)}, testNow)
		s = Reduce(s, AddItem{Item: newItem("B", "M", "1", 1)}, testNow)

		require.Len(t, s.Items, 2)
		assert.Equal(t, "B", s.Items[0].ProductID)
		assert.Equal(t, "A", s.Items[1].ProductID)
	})
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := Reduce(State{}, AddItem{Item: newItem("P1", "M", "20", 2)}, testNow)
	id := s.Items[0].ID

	_ = Reduce(s, SetQuantity{ID: id, Quantity: 7}, testNow)
	_ = Reduce(s, RemoveItem{ID: id}, testNow)
	_ = Reduce(s, ApplyDiscount{Discount: Discount{Code: "X", Percentage: decimal.NewFromInt(5)}}, testNow)

	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Nil(t, s.Discount)
}

func TestReduce_SetQuantity(t *testing.T) {
	base := Reduce(State{}, AddItem{Item: newItem("P1", "M", "20", 2)}, testNow)
	id := base.Items[0].ID

	cases := []struct {
		name string
		in   int
		want int
	}{
		{"in range", 4, 4},
		{"zero clamps to min", 0, 1},
		{"negative clamps to min", -3, 1},
		{"above max clamps", 42, 10},
		{"max", 10, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Reduce(base, SetQuantity{ID: id, Quantity: tc.in}, testNow)
			assert.Equal(t, tc.want, s.Items[0].Quantity)
		})
	}

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := Reduce(base, SetQuantity{ID: "missing", Quantity: 9}, testNow)
		assert.Equal(t, base.Items, s.Items)
	})
}

func TestReduce_RemoveItem(t *testing.T) {
	s := Reduce(State{}, AddItem{Item: newItem("P1", "M", "20", 1)}, testNow)
	s = Reduce(s, AddItem{Item: newItem("P2", "M", "15", 1)}, testNow)

	s = Reduce(s, RemoveItem{ID: s.Items[0].ID}, testNow)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "P2", s.Items[0].ProductID)

	s = Reduce(s, RemoveItem{ID: "missing"}, testNow)
	assert.Len(t, s.Items, 1)
}

func TestReduce_Clear(t *testing.T) {
	s := Reduce(State{}, AddItem{Item: newItem("P1", "M", "20", 1)}, testNow)
	s = Reduce(s, ApplyDiscount{Discount: Discount{Code: "SAVE15", Percentage: decimal.NewFromInt(15)}}, testNow)

	s = Reduce(s, Clear{}, testNow)
	assert.Empty(t, s.Items)
	assert.NotNil(t, s.Items)
	assert.Nil(t, s.Discount)
}

func TestReduce_OpenFlag(t *testing.T) {
	s := Reduce(State{}, ToggleOpen{}, testNow)
	assert.True(t, s.IsOpen)
	s = Reduce(s, ToggleOpen{}, testNow)
	assert.False(t, s.IsOpen)
	s = Reduce(s, Open{}, testNow)
	assert.True(t, s.IsOpen)
	s = Reduce(s, Close{}, testNow)
	assert.False(t, s.IsOpen)
}

func TestReduce_Discount(t *testing.T) {
	s := Reduce(State{}, ApplyDiscount{Discount: Discount{Code: "SAVE15", Percentage: decimal.NewFromInt(15)}}, testNow)
	require.NotNil(t, s.Discount)
	assert.Equal(t, "SAVE15", s.Discount.Code)

	s = Reduce(s, ApplyDiscount{Discount: Discount{Code: "WELCOME20", Percentage: decimal.NewFromInt(20)}}, testNow)
	assert.Equal(t, "WELCOME20", s.Discount.Code)

	s = Reduce(s, ApplyDiscount{Discount: Discount{Code: "BIG", Percentage: decimal.NewFromInt(150)}}, testNow)
	requireDecimal(t, "100", s.Discount.Percentage)

	s = Reduce(s, RemoveDiscount{}, testNow)
	assert.Nil(t, s.Discount)
}

func TestTouchesItems(t *testing.T) {
	assert.True(t, AddItem{}.TouchesItems())
	assert.True(t, RemoveItem{}.TouchesItems())
	assert.True(t, SetQuantity{}.TouchesItems())
	assert.True(t, Clear{}.TouchesItems())

	assert.False(t, ToggleOpen{}.TouchesItems())
	assert.False(t, Open{}.TouchesItems())
	assert.False(t, Close{}.TouchesItems())
	assert.False(t, ApplyDiscount{}.TouchesItems())
	assert.False(t, RemoveDiscount{}.TouchesItems())
}
