package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beautique-shop/storefront/internal/cart/model"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	logx "github.com/beautique-shop/storefront/pkg/logger"
)

// Checkout writes the handoff payload read by the checkout page. An empty
// cart is rejected with errx.ErrEmptyCart and nothing is written. The cart
// itself is left untouched.
func (s *Store) Checkout(ctx context.Context) (model.CheckoutData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return model.CheckoutData{}, errx.ErrEmptyCart
	}

	snap := model.NewSnapshot(s.items)
	data := model.CheckoutData{
		Items:     snap.Items,
		Subtotal:  snap.Total,
		Timestamp: s.now().UnixMilli(),
	}
	b, err := json.Marshal(data)
	if err != nil {
		return model.CheckoutData{}, fmt.Errorf("marshal checkout data: %w", err)
	}
	if err := s.storage.Write(ctx, s.keys.CheckoutKey, string(b)); err != nil {
		logx.Error().Err(err).Str("key", s.keys.CheckoutKey).Msg("failed to write checkout data")
		return model.CheckoutData{}, fmt.Errorf("write checkout data: %w", err)
	}

	logx.Info().Int("items", snap.ItemCount).Str("subtotal", snap.Total.StringFixed(2)).Msg("checkout handoff written")
	return data, nil
}
