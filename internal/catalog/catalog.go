// Package catalog is the in-memory product list managed from the admin page.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/beautique-shop/storefront/internal/cart/model"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	logx "github.com/beautique-shop/storefront/pkg/logger"
)

const PromptDeleteProduct = "Are you sure you want to delete this product?"

type Catalog struct {
	mu       sync.RWMutex
	products []Product
	confirm  model.Confirmer
}

// New returns a catalog holding seed. Deletions are gated by confirm.
func New(confirm model.Confirmer, seed ...Product) *Catalog {
	if confirm == nil {
		confirm = model.NeverConfirm
	}
	products := make([]Product, len(seed))
	copy(products, seed)
	return &Catalog{products: products, confirm: confirm}
}

// List returns all products in creation order.
func (c *Catalog) List() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Filter returns products whose name, brand or sku contains query,
// case-insensitively. An empty query returns everything.
func (c *Catalog) Filter(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range c.products {
		if p.matches(q) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Get(id int64) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.products[i], nil
	}
	return Product{}, errx.ErrProductNotFound
}

// Create validates p, assigns the next id and appends it.
func (c *Catalog) Create(p Product) (Product, error) {
	p, err := p.normalize()
	if err != nil {
		return Product{}, err
	}
	if strings.TrimSpace(p.Image) == "" {
		p.Image = PlaceholderImage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	p.ID = c.nextID()
	c.products = append(c.products, p)
	logx.Info().Int64("id", p.ID).Str("sku", p.SKU).Msg("product added")
	return p, nil
}

// Update replaces the stored product's fields with p. The id is kept, and so
// is the current image when p carries none.
func (c *Catalog) Update(id int64, p Product) (Product, error) {
	p, err := p.normalize()
	if err != nil {
		return Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return Product{}, errx.ErrProductNotFound
	}
	p.ID = id
	if strings.TrimSpace(p.Image) == "" {
		p.Image = c.products[i].Image
	}
	c.products[i] = p
	logx.Info().Int64("id", id).Msg("product updated")
	return p, nil
}

// Delete removes the product once the confirmer agrees.
func (c *Catalog) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := c.Get(id); err != nil {
		return false, err
	}
	if !c.confirm.Confirm(ctx, PromptDeleteProduct) {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c.products = append(c.products[:i], c.products[i+1:]...)
	logx.Info().Int64("id", id).Msg("product deleted")
	return true, nil
}

func (c *Catalog) indexOf(id int64) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) nextID() int64 {
	var highest int64
	for _, p := range c.products {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}
