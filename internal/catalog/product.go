package catalog

import (
	"encoding/json"
	"strings"

	"github.com/beautique-shop/storefront/internal/cart/model"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// PlaceholderImage is used for products created without an image.
const PlaceholderImage = "https://via.placeholder.com/200"

type Product struct {
	ID            int64           `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Volume        string          `json:"volume,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	Status        Status          `json:"status"`
	Featured      bool            `json:"featured"`
	Image         string          `json:"image"`
	Description   string          `json:"description,omitempty"`
	ExpertReview  string          `json:"expert_review,omitempty"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain(p), model.PriceNumber(p.Price)})
}

// Candidate extracts the fields the cart captures when the product is added.
func (p Product) Candidate() model.Candidate {
	return model.Candidate{
		ID:    model.NormalizeID(p.ID),
		SKU:   p.SKU,
		Name:  p.Name,
		Brand: p.Brand,
		Price: p.Price,
		Image: p.Image,
	}
}

func (p Product) matches(query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.SKU), query)
}

// normalize trims text fields, defaults the status and validates the result.
func (p Product) normalize() (Product, error) {
	p.SKU = strings.TrimSpace(p.SKU)
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Category = strings.TrimSpace(p.Category)
	p.Status = Status(strings.ToLower(strings.TrimSpace(string(p.Status))))
	if p.Status == "" {
		p.Status = StatusActive
	}

	switch {
	case p.Name == "":
		return Product{}, errx.Invalid("product name is required")
	case p.SKU == "":
		return Product{}, errx.Invalid("product sku is required")
	case p.Price.IsNegative():
		return Product{}, errx.Invalid("price must not be negative")
	case p.StockQuantity < 0:
		return Product{}, errx.Invalid("stock quantity must not be negative")
	case p.Status != StatusActive && p.Status != StatusInactive:
		return Product{}, errx.Invalid("unknown status %q", p.Status)
	}
	return p, nil
}

// SeedProducts returns the sample products the admin page starts with.
func SeedProducts() []Product {
	return []Product{
		{
			ID:            1,
			SKU:           "AXY-AIS-30",
			Name:          "Artichoke Intensive Skin Barrier",
			Brand:         "AXIS-Y",
			Category:      "face-care",
			Price:         decimal.RequireFromString("34.95"),
			Volume:        "30ml",
			StockQuantity: 12,
			Status:        StatusActive,
			Featured:      true,
			Image:         PlaceholderImage,
			Description:   "Advanced skin barrier repair serum...",
			ExpertReview:  "Our team tested this for 2 months...",
		},
		{
			ID:            2,
			SKU:           "HDT-BL-300",
			Name:          "Calm Body Lotion",
			Brand:         "Hadat Cosmetics",
			Category:      "body-care",
			Price:         decimal.RequireFromString("53.00"),
			Volume:        "300ml",
			StockQuantity: 8,
			Status:        StatusActive,
			Image:         PlaceholderImage,
			Description:   "Nourishing body lotion with hemp oil...",
			ExpertReview:  "Perfect for daily use...",
		},
	}
}
