package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StripeClient creates payment methods through the Stripe REST API.
type StripeClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewStripeClient(baseURL, secretKey string, timeout time.Duration) *StripeClient {
	return &StripeClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
	}
}

type stripePaymentMethod struct {
	ID   string `json:"id"`
	Card struct {
		Brand string `json:"brand"`
		Last4 string `json:"last4"`
	} `json:"card"`
}

type stripeErrorBody struct {
	Error *Error `json:"error"`
}

func (c *StripeClient) CreatePaymentMethod(ctx context.Context, req Request) (PaymentMethod, error) {
	form := url.Values{}
	form.Set("type", "card")
	form.Set("card[token]", req.CardToken)
	form.Set("billing_details[name]", req.Billing.Name)
	setIf(form, "billing_details[email]", req.Billing.Email)
	setIf(form, "billing_details[phone]", req.Billing.Phone)
	setIf(form, "billing_details[address][line1]", req.Billing.Address.Line1)
	setIf(form, "billing_details[address][line2]", req.Billing.Address.Line2)
	setIf(form, "billing_details[address][city]", req.Billing.Address.City)
	setIf(form, "billing_details[address][state]", req.Billing.Address.State)
	setIf(form, "billing_details[address][postal_code]", req.Billing.Address.PostalCode)
	setIf(form, "billing_details[address][country]", req.Billing.Address.Country)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_methods", strings.NewReader(form.Encode()))
	if err != nil {
		return PaymentMethod{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return PaymentMethod{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return PaymentMethod{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return PaymentMethod{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		var eb stripeErrorBody
		if err := json.Unmarshal(body, &eb); err != nil || eb.Error == nil {
			return PaymentMethod{}, fmt.Errorf("processor returned status %d", resp.StatusCode)
		}
		return PaymentMethod{}, eb.Error
	}

	var pm stripePaymentMethod
	if err := json.Unmarshal(body, &pm); err != nil {
		return PaymentMethod{}, fmt.Errorf("decode payment method: %w", err)
	}
	if pm.ID == "" {
		return PaymentMethod{}, fmt.Errorf("processor returned no payment method id")
	}
	return PaymentMethod{ID: pm.ID, Brand: pm.Card.Brand, Last4: pm.Card.Last4}, nil
}

func setIf(form url.Values, key, value string) {
	if value != "" {
		form.Set(key, value)
	}
}
