package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beautique-shop/storefront/internal/cart/model"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	logx "github.com/beautique-shop/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItem merges the candidate into the cart: an existing line item with the
// same id gains one unit, otherwise a new line item with quantity 1 is
// appended. The existing item's price and display fields are kept as they
// were. An item already at MaxQuantity is left unchanged.
//
// A non-nil error wraps errx.ErrNotPersisted and reports a failed storage
// write; the in-memory cart keeps the mutation either way.
func (s *Store) AddItem(ctx context.Context, c model.Candidate) (model.LineItem, error) {
	c.ID = model.NormalizeID(c.ID)
	if c.ID.IsZero() {
		c.ID = model.ItemID(uuid.NewString())
	}
	if c.Price.IsNegative() {
		logx.Warn().Str("id", c.ID.String()).Str("price", c.Price.String()).Msg("negative price on add, using 0")
		c.Price = decimal.Zero
	}

	s.mu.Lock()
	var item model.LineItem
	if i := s.indexOf(c.ID); i >= 0 {
		if s.items[i].Quantity >= model.MaxQuantity {
			item = s.items[i]
			s.mu.Unlock()
			logx.Debug().Str("id", c.ID.String()).Int("quantity", item.Quantity).Msg("item already at maximum quantity")
			return item, nil
		}
		s.items[i].Quantity++
		item = s.items[i]
	} else {
		item = c.LineItem()
		s.items = append(s.items, item)
	}
	err := s.persistLocked(ctx)
	snap := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap)
	return item, err
}

// UpdateQuantity sets the quantity of the matching item. Quantities outside
// [MinQuantity, MaxQuantity] and unknown ids are ignored; applied reports
// whether the cart changed.
func (s *Store) UpdateQuantity(ctx context.Context, id model.ItemID, quantity int) (applied bool, err error) {
	if quantity < model.MinQuantity || quantity > model.MaxQuantity {
		logx.Debug().Str("id", id.String()).Int("quantity", quantity).Msg("quantity out of range, ignored")
		return false, nil
	}
	id = model.NormalizeID(id)

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.items[i].Quantity = quantity
	err = s.persistLocked(ctx)
	snap := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true, err
}

// RemoveItem deletes every line item matching id once the confirmer agrees.
// Unknown ids return without prompting.
func (s *Store) RemoveItem(ctx context.Context, id model.ItemID) (removed bool, err error) {
	id = model.NormalizeID(id)
	if _, ok := s.Item(id); !ok {
		return false, nil
	}
	// the lock is not held while the user answers
	if !s.confirm.Confirm(ctx, PromptRemoveItem) {
		logx.Debug().Str("id", id.String()).Msg("remove declined")
		return false, nil
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	removed = len(kept) != len(s.items)
	s.items = kept
	if !removed {
		s.mu.Unlock()
		return false, nil
	}
	err = s.persistLocked(ctx)
	snap := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true, err
}

// Clear empties the cart once the confirmer agrees.
func (s *Store) Clear(ctx context.Context) (cleared bool, err error) {
	if !s.confirm.Confirm(ctx, PromptClearCart) {
		logx.Debug().Msg("clear declined")
		return false, nil
	}

	s.mu.Lock()
	s.items = []model.LineItem{}
	err = s.persistLocked(ctx)
	snap := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true, err
}

// persistLocked writes the cart under the cart key. s.mu must be held so
// writes reach storage in mutation order.
func (s *Store) persistLocked(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []model.LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: marshal cart: %w", errx.ErrNotPersisted, err)
	}
	if err := s.storage.Write(ctx, s.keys.Key, string(b)); err != nil {
		logx.Error().Err(err).Str("key", s.keys.Key).Msg("failed to persist cart, keeping in-memory state")
		return fmt.Errorf("%w: %w", errx.ErrNotPersisted, err)
	}
	return nil
}
