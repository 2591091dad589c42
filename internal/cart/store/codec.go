package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/beautique-shop/storefront/internal/cart/model"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	logx "github.com/beautique-shop/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// load reads the persisted cart. Every failure degrades to an empty cart.
func (s *Store) load(ctx context.Context) []model.LineItem {
	key := s.keys.Key
	raw, err := s.storage.Read(ctx, key)
	if err != nil {
		if errors.Is(err, errx.ErrNotFound) {
			logx.Debug().Str("key", key).Msg("no persisted cart, starting empty")
		} else {
			logx.Warn().Err(err).Str("key", key).Msg("failed to read persisted cart, starting empty")
		}
		return []model.LineItem{}
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("malformed persisted cart, starting empty")
		return []model.LineItem{}
	}
	return sanitize(decodeRecords(records))
}

// decodeRecords decodes each stored line item on its own; a record of the
// wrong shape is dropped without losing the rest.
func decodeRecords(records []json.RawMessage) []model.LineItem {
	items := make([]model.LineItem, 0, len(records))
	for i, rec := range records {
		var item model.LineItem
		if err := json.Unmarshal(rec, &item); err != nil {
			logx.Warn().Err(err).Int("index", i).Msg("dropping undecodable persisted line item")
			continue
		}
		items = append(items, item)
	}
	return items
}

// sanitize restores the cart invariants on loaded data: records without an id
// or with a quantity below the minimum are dropped, quantities above the
// maximum are clamped, negative prices become zero and duplicate ids are
// merged into the first occurrence.
func sanitize(items []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	seen := make(map[model.ItemID]int, len(items))
	for i, item := range items {
		if item.ID.IsZero() || item.Quantity < model.MinQuantity {
			logx.Warn().Int("index", i).Str("id", item.ID.String()).Int("quantity", item.Quantity).Msg("dropping invalid persisted line item")
			continue
		}
		if item.Price.IsNegative() {
			item.Price = decimal.Zero
		}
		if at, ok := seen[item.ID]; ok {
			out[at].Quantity = min(out[at].Quantity+item.Quantity, model.MaxQuantity)
			continue
		}
		item.Quantity = min(item.Quantity, model.MaxQuantity)
		seen[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}
