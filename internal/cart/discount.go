package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountCodes maps a normalized code to its percentage off. It is the
// validation boundary in front of ApplyDiscount.
type DiscountCodes map[string]decimal.Decimal

func DefaultDiscountCodes() DiscountCodes {
	return DiscountCodes{
		"THREADROT10": decimal.NewFromInt(10),
		"SAVE15":      decimal.NewFromInt(15),
		"WELCOME20":   decimal.NewFromInt(20),
	}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup resolves a code typed by a visitor.
func (c DiscountCodes) Lookup(code string) (Discount, bool) {
	norm := NormalizeCode(code)
	if norm == "" {
		return Discount{}, false
	}
	pct, ok := c[norm]
	if !ok {
		return Discount{}, false
	}
	return Discount{Code: norm, Percentage: pct}, true
}
