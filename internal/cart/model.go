package cart

import (
	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// LineItem is one row of the cart. Product attributes are a snapshot taken at
// add time and are not kept in sync with the catalog.
type LineItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

// NewItem is the payload for AddItem. The row id is assigned by the reducer.
type NewItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

// Discount must already be validated by the caller.
type Discount struct {
	Code       string          `json:"code"`
	Percentage decimal.Decimal `json:"percentage"`
}

type State struct {
	Items    []LineItem `json:"items"`
	IsOpen   bool       `json:"isOpen"`
	Discount *Discount  `json:"appliedDiscount"`
}

func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s State) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

func (s State) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range s.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// Total is the subtotal after the applied discount, unrounded.
func (s State) Total() decimal.Decimal {
	sub := s.Subtotal()
	if s.Discount == nil {
		return sub
	}
	factor := decimal.NewFromInt(1).Sub(s.Discount.Percentage.Div(hundred))
	return sub.Mul(factor)
}

func (s State) DiscountAmount() decimal.Decimal {
	return s.Subtotal().Sub(s.Total())
}

// Clone returns a deep copy so callers can't alias store internals.
func (s State) Clone() State {
	out := State{IsOpen: s.IsOpen}
	out.Items = make([]LineItem, len(s.Items))
	copy(out.Items, s.Items)
	if s.Discount != nil {
		d := *s.Discount
		out.Discount = &d
	}
	return out
}

func clampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

var hundred = decimal.NewFromInt(100)

func clampPercentage(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
