package widget

import (
	"context"
	"testing"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/cart/repo"
	"github.com/beautique-shop/storefront/internal/cart/store"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]string{
		"€34.95":    "34.95",
		"$1,034.50": "1034.5",
		" 53 ":      "53",
		"12.5 EUR":  "12.5",
		"1.":        "1",
		".5":        "0.5",
		"2e1":       "20",
		"free":      "0",
		"":          "0",
	}
	for in, want := range cases {
		assert.Equal(t, want, ParsePrice(in).String(), "input %q", in)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3", 3, true},
		{" 7", 7, true},
		{"3.7", 3, true},
		{"10abc", 10, true},
		{"-1", -1, true},
		{"abc", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		q, ok := ParseQuantity(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, q, "input %q", tt.in)
	}
}

func TestCandidateFromAttributes(t *testing.T) {
	c := CandidateFromAttributes(Attributes{
		AttrProductID: "7",
		AttrSKU:       "AXY-AIS-30",
		AttrName:      "Artichoke Intensive Skin Barrier",
		AttrBrand:     "AXIS-Y",
		AttrPrice:     "€34.95",
		AttrImage:     "https://cdn.example/a.png",
	}, func() string { return "generated" })
	assert.Equal(t, model.ItemID("7"), c.ID)
	assert.Equal(t, "34.95", c.Price.String())
	assert.Equal(t, "https://cdn.example/a.png", c.Image)

	fallback := CandidateFromAttributes(Attributes{}, func() string { return "generated" })
	assert.Equal(t, model.ItemID("generated"), fallback.ID)
	assert.Equal(t, UnknownProduct, fallback.Name)
	assert.Equal(t, PlaceholderImage, fallback.Image)
	assert.True(t, fallback.Price.IsZero())
}

func newWidget(t *testing.T, confirm model.Confirmer) (*Widget, *[]View) {
	t.Helper()
	s := store.New(repo.NewMemoryStorage(), store.WithConfirmer(confirm))
	s.Hydrate(context.Background())
	var views []View
	w := New(s, RenderFunc(func(v View) { views = append(views, v) }))
	t.Cleanup(w.Stop)
	return w, &views
}

func TestWidgetFlow(t *testing.T) {
	ctx := context.Background()
	w, views := newWidget(t, model.AlwaysConfirm)

	assert.Equal(t, "Cart", w.View().CounterLabel)
	assert.False(t, w.View().CheckoutEnabled)

	w.Open()
	require.Len(t, *views, 1)
	assert.True(t, (*views)[0].Open)

	attrs := Attributes{AttrProductID: "1", AttrPrice: "10", AttrName: "Serum"}
	_, err := w.AddToCart(ctx, attrs)
	require.NoError(t, err)
	_, err = w.AddToCart(ctx, attrs)
	require.NoError(t, err)
	_, err = w.AddToCart(ctx, Attributes{AttrProductID: "2", AttrPrice: "€5"})
	require.NoError(t, err)

	last := (*views)[len(*views)-1]
	assert.Equal(t, "Cart (3)", last.CounterLabel)
	assert.Equal(t, "€25.00", last.Subtotal)
	assert.True(t, last.CheckoutEnabled)
	assert.True(t, last.Open)

	applied, err := w.ChangeQuantity(ctx, "1", "5")
	require.NoError(t, err)
	assert.True(t, applied)
	applied, err = w.ChangeQuantity(ctx, "1", "abc")
	require.NoError(t, err)
	assert.False(t, applied)
	applied, err = w.ChangeQuantity(ctx, "1", "0")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "Cart (6)", w.View().CounterLabel)

	removed, err := w.Remove(ctx, "2")
	require.NoError(t, err)
	assert.True(t, removed)

	data, err := w.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "50", data.Subtotal.String())

	cleared, err := w.Clear(ctx)
	require.NoError(t, err)
	assert.True(t, cleared)

	_, err = w.Checkout(ctx)
	assert.ErrorIs(t, err, errx.ErrEmptyCart)

	w.Close()
	last = (*views)[len(*views)-1]
	assert.False(t, last.Open)
	assert.Equal(t, "Cart", last.CounterLabel)
	assert.Equal(t, "€0.00", last.Subtotal)
}

func TestWidgetNilRenderer(t *testing.T) {
	s := store.New(repo.NewMemoryStorage())
	w := New(s, nil)
	defer w.Stop()
	w.Open()
	assert.True(t, w.IsOpen())
}
