package checkout

import (
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

type ShippingInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Phone     string `json:"phone"`
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Validate returns the message for the first failing check, or "".
func (s ShippingInfo) Validate() string {
	switch {
	case blank(s.Email) || !strings.Contains(s.Email, "@"):
		return msgInvalidEmail
	case blank(s.FirstName) || blank(s.LastName):
		return msgFullName
	case blank(s.Address) || blank(s.City) || blank(s.State) || blank(s.ZipCode):
		return msgAddress
	case blank(s.Phone):
		return msgPhone
	}
	return ""
}

func (s ShippingInfo) toOrder() order.Shipping {
	return order.Shipping{
		Email:     strings.TrimSpace(s.Email),
		FirstName: strings.TrimSpace(s.FirstName),
		LastName:  strings.TrimSpace(s.LastName),
		Address:   strings.TrimSpace(s.Address),
		Apartment: strings.TrimSpace(s.Apartment),
		City:      strings.TrimSpace(s.City),
		State:     strings.TrimSpace(s.State),
		ZipCode:   strings.TrimSpace(s.ZipCode),
		Phone:     strings.TrimSpace(s.Phone),
	}
}

func (s ShippingInfo) billing(cardholder string) payment.BillingDetails {
	return payment.BillingDetails{
		Name:  strings.TrimSpace(cardholder),
		Email: strings.TrimSpace(s.Email),
		Phone: strings.TrimSpace(s.Phone),
		Address: payment.Address{
			Line1:      strings.TrimSpace(s.Address),
			Line2:      strings.TrimSpace(s.Apartment),
			City:       strings.TrimSpace(s.City),
			State:      strings.TrimSpace(s.State),
			PostalCode: strings.TrimSpace(s.ZipCode),
		},
	}
}
