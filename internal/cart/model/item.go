package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	// MinQuantity and MaxQuantity bound every line item quantity.
	MinQuantity = 1
	MaxQuantity = 10
)

// LineItem is one product in the cart. Display fields and price are captured
// when the product is first added and never refreshed.
type LineItem struct {
	ID       ItemID          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// MarshalJSON writes the price as a plain JSON number, the shape the
// storefront pages read back from storage.
func (li LineItem) MarshalJSON() ([]byte, error) {
	type plain LineItem
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain(li), PriceNumber(li.Price)})
}

// Subtotal returns price * quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Candidate is the product data extracted by the UI when "add to cart" fires.
type Candidate struct {
	ID    ItemID          `json:"id"`
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Brand string          `json:"brand"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

func (c Candidate) MarshalJSON() ([]byte, error) {
	type plain Candidate
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain(c), PriceNumber(c.Price)})
}

// LineItem builds a new line item with quantity 1.
func (c Candidate) LineItem() LineItem {
	return LineItem{
		ID:       c.ID,
		SKU:      c.SKU,
		Name:     c.Name,
		Brand:    c.Brand,
		Price:    c.Price,
		Image:    c.Image,
		Quantity: MinQuantity,
	}
}

// Snapshot is a read-only copy of the cart handed to observers and renderers.
type Snapshot struct {
	// Seq increases with every change to the cart. A renderer that sees a
	// lower Seq than one it already drew can drop it.
	Seq       uint64          `json:"seq"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	Empty     bool            `json:"empty"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return json.Marshal(struct {
		plain
		Total json.Number `json:"total"`
	}{plain(s), PriceNumber(s.Total)})
}

// NewSnapshot copies items and derives the totals.
func NewSnapshot(items []LineItem) Snapshot {
	s := Snapshot{
		Items: make([]LineItem, len(items)),
		Total: decimal.Zero,
		Empty: len(items) == 0,
	}
	copy(s.Items, items)
	for _, item := range items {
		s.Total = s.Total.Add(item.Subtotal())
		s.ItemCount += item.Quantity
	}
	return s
}

// CheckoutData is the handoff payload written for the checkout page.
type CheckoutData struct {
	Items     []LineItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Timestamp int64           `json:"timestamp"`
}

func (d CheckoutData) MarshalJSON() ([]byte, error) {
	type plain CheckoutData
	return json.Marshal(struct {
		plain
		Subtotal json.Number `json:"subtotal"`
	}{plain(d), PriceNumber(d.Subtotal)})
}

// PriceNumber renders an amount as an unquoted JSON number.
func PriceNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
