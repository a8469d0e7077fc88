package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("order not found")

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled}

func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

type Item struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type Shipping struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Phone     string `json:"phone"`
}

func (s Shipping) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

type Order struct {
	ID string `json:"id"`
	Shipping
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountCode    string          `json:"discountCode,omitempty"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	PaymentMethodID string          `json:"-"`
	Items           []Item          `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Draft is what checkout submits once payment has been tokenized.
type Draft struct {
	Shipping        Shipping
	Subtotal        decimal.Decimal
	DiscountCode    string
	DiscountAmount  decimal.Decimal
	ShippingCost    decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	PaymentMethodID string
	Items           []Item
}

func (d Draft) Validate() error {
	if len(d.Items) == 0 {
		return errors.New("order has no items")
	}
	if strings.TrimSpace(d.Shipping.Email) == "" {
		return errors.New("order has no email")
	}
	if d.Total.IsNegative() {
		return errors.New("order total is negative")
	}
	return nil
}

// ListFilter narrows admin listings. Zero values match everything.
type ListFilter struct {
	Status Status
	Search string
}
