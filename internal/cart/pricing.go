package cart

import (
	"github.com/shopspring/decimal"
)

// Pricing holds the storefront's shipping and tax rules.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	FlatShipping          decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(75),
		FlatShipping:          decimal.RequireFromString("8.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// Breakdown is the monetary summary shown at checkout and stored on orders.
// Every component is rounded to cents.
type Breakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountCode   string          `json:"discountCode,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	Shipping       decimal.Decimal `json:"shipping"`
	Tax            decimal.Decimal `json:"tax"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// FreeShippingRemaining is how much more the visitor must spend to ship free.
func (p Pricing) FreeShippingRemaining(s State) decimal.Decimal {
	rem := p.FreeShippingThreshold.Sub(s.Subtotal())
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// ShippingCost is free once the pre-discount subtotal reaches the threshold.
func (p Pricing) ShippingCost(s State) decimal.Decimal {
	if s.Subtotal().GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShipping
}

func (p Pricing) Breakdown(s State) Breakdown {
	subtotal := s.Subtotal().Round(2)
	total := s.Total().Round(2)
	shipping := p.ShippingCost(s).Round(2)
	tax := total.Mul(p.TaxRate).Round(2)

	b := Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: subtotal.Sub(total),
		Total:          total,
		Shipping:       shipping,
		Tax:            tax,
		GrandTotal:     total.Add(shipping).Add(tax),
	}
	if s.Discount != nil {
		b.DiscountCode = s.Discount.Code
	}
	return b
}
