package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images,omitempty"`
	Category    string          `json:"category"`
	Era         string          `json:"era,omitempty"`
	Rot         int             `json:"rot"`
	Style       string          `json:"style,omitempty"`
	Color       string          `json:"color,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Sizes       []string        `json:"sizes"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		InStock bool `json:"inStock"`
	}{plain(p), p.InStock()})
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Era         string          `json:"era"`
	Rot         int             `json:"rot"`
	Style       string          `json:"style"`
	Color       string          `json:"color"`
	Brand       string          `json:"brand"`
	Sizes       []string        `json:"sizes"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"isActive"`
}

func (in ProductInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return errors.New("product name is required")
	case !in.Price.IsPositive():
		return errors.New("please enter a valid price")
	case strings.TrimSpace(in.Image) == "":
		return errors.New("product image url is required")
	case in.Rot < 0 || in.Rot > 100:
		return errors.New("rot level must be between 0 and 100")
	case in.Stock < 0:
		return errors.New("stock cannot be negative")
	}
	return nil
}

// Normalized trims text fields and fills defaults.
func (in ProductInput) Normalized() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = "t-shirts"
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	if in.Sizes == nil {
		in.Sizes = []string{}
	}
	return in
}
