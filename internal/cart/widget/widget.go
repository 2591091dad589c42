// Package widget is the cart overlay's event surface. Each user event the
// storefront pages bind (open, close, add to cart, change quantity, remove,
// clear, checkout) is a method here; rendering is left to a Renderer.
package widget

import (
	"context"
	"fmt"
	"sync"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/cart/store"
	"github.com/google/uuid"
)

const CurrencySymbol = "€"

// View is everything a renderer needs to draw the counter and the overlay.
type View struct {
	Open            bool           `json:"open"`
	Cart            model.Snapshot `json:"cart"`
	CounterLabel    string         `json:"counter_label"`
	Subtotal        string         `json:"subtotal"`
	CheckoutEnabled bool           `json:"checkout_enabled"`
}

type Renderer interface {
	Render(View)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(View)

func (f RenderFunc) Render(v View) { f(v) }

type Widget struct {
	store    *store.Store
	renderer Renderer
	newID    func() string

	mu   sync.Mutex
	open bool

	unsubscribe func()
}

type Option func(*Widget)

// WithIDGenerator replaces the generator used for elements without a product id.
func WithIDGenerator(fn func() string) Option {
	return func(w *Widget) { w.newID = fn }
}

// New binds a widget to s. A nil renderer discards views.
func New(s *store.Store, r Renderer, opts ...Option) *Widget {
	if r == nil {
		r = RenderFunc(func(View) {})
	}
	w := &Widget{store: s, renderer: r, newID: uuid.NewString}
	for _, opt := range opts {
		opt(w)
	}
	w.unsubscribe = s.Subscribe(func(snap model.Snapshot) {
		w.renderer.Render(w.view(snap))
	})
	return w
}

// Stop detaches the widget from the store.
func (w *Widget) Stop() {
	w.unsubscribe()
}

func (w *Widget) Open() {
	w.setOpen(true)
}

func (w *Widget) Close() {
	w.setOpen(false)
}

func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *Widget) setOpen(open bool) {
	w.mu.Lock()
	w.open = open
	w.mu.Unlock()
	w.renderer.Render(w.View())
}

// View returns the current view.
func (w *Widget) View() View {
	return w.view(w.store.Snapshot())
}

func (w *Widget) view(snap model.Snapshot) View {
	return View{
		Open:            w.IsOpen(),
		Cart:            snap,
		CounterLabel:    CounterLabel(snap.ItemCount),
		Subtotal:        FormatPrice(snap.Total.StringFixed(2)),
		CheckoutEnabled: !snap.Empty,
	}
}

// AddToCart handles a click on an add-to-cart element.
func (w *Widget) AddToCart(ctx context.Context, attrs Attributes) (model.LineItem, error) {
	return w.store.AddItem(ctx, CandidateFromAttributes(attrs, w.newID))
}

// ChangeQuantity handles the quantity input and the +/- buttons. raw is the
// input's value; values that do not start with an integer are ignored.
func (w *Widget) ChangeQuantity(ctx context.Context, id string, raw string) (bool, error) {
	q, ok := ParseQuantity(raw)
	if !ok {
		return false, nil
	}
	return w.store.UpdateQuantity(ctx, model.NormalizeID(id), q)
}

func (w *Widget) Remove(ctx context.Context, id string) (bool, error) {
	return w.store.RemoveItem(ctx, model.NormalizeID(id))
}

func (w *Widget) Clear(ctx context.Context) (bool, error) {
	return w.store.Clear(ctx)
}

// Checkout writes the handoff payload; errx.ErrEmptyCart carries the message
// to show when the cart is empty.
func (w *Widget) Checkout(ctx context.Context) (model.CheckoutData, error) {
	return w.store.Checkout(ctx)
}

// CounterLabel is the text of the cart buttons.
func CounterLabel(count int) string {
	if count == 0 {
		return "Cart"
	}
	return fmt.Sprintf("Cart (%d)", count)
}

// FormatPrice prefixes an already formatted amount with the currency symbol.
func FormatPrice(amount string) string {
	return CurrencySymbol + amount
}
