// Package store owns the cart contents. Every mutation goes through a Store
// method, is written to the storage collaborator before the method returns
// and is then announced to subscribed observers.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/beautique-shop/storefront/internal/cart/model"
	logx "github.com/beautique-shop/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	PromptRemoveItem = "Remove this item from cart?"
	PromptClearCart  = "Clear all items from cart?"
)

// Observer receives a snapshot after every applied mutation. Snapshots are
// delivered one at a time in Seq order; one overtaken by a newer change is
// skipped. Observers must not mutate the store.
type Observer func(model.Snapshot)

type Store struct {
	storage model.Storage
	confirm model.Confirmer
	keys    model.CartConfig
	now     func() time.Time

	mu    sync.Mutex
	items []model.LineItem
	seq   uint64

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObs   int

	notifyMu  sync.Mutex
	delivered uint64
}

type Option func(*Store)

// WithConfirmer sets the gate used by RemoveItem and Clear. The default
// declines every prompt.
func WithConfirmer(c model.Confirmer) Option {
	return func(s *Store) { s.confirm = c }
}

// WithConfig overrides the storage keys.
func WithConfig(cfg model.CartConfig) Option {
	return func(s *Store) { s.keys = cfg }
}

// WithClock overrides the clock used for checkout timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store. Call Hydrate to load the persisted cart.
func New(storage model.Storage, opts ...Option) *Store {
	s := &Store{
		storage:   storage,
		confirm:   model.NeverConfirm,
		keys:      model.DefaultCartConfig(),
		now:       time.Now,
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate replaces the in-memory cart with the persisted one. Missing or
// malformed storage yields an empty cart; Hydrate never fails.
func (s *Store) Hydrate(ctx context.Context) {
	items := s.load(ctx)

	s.mu.Lock()
	s.items = items
	snap := s.changedLocked()
	s.mu.Unlock()

	logx.Debug().Str("key", s.keys.Key).Int("items", len(items)).Msg("cart hydrated")
	s.notify(snap)
}

// Subscribe registers an observer and returns a func that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) notify(snap model.Snapshot) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if snap.Seq <= s.delivered {
		logx.Debug().Uint64("seq", snap.Seq).Uint64("delivered", s.delivered).Msg("stale snapshot skipped")
		return
	}
	s.delivered = snap.Seq

	s.obsMu.Lock()
	fns := make([]Observer, 0, len(s.observers))
	// subscription order
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// ================ Queries ================

// Total returns the sum of price * quantity; zero for an empty cart.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.NewSnapshot(s.items).Total
}

// ItemCount returns the sum of quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Item returns the first line item matching id.
func (s *Store) Item(id model.ItemID) (model.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(model.NormalizeID(id)); i >= 0 {
		return s.items[i], true
	}
	return model.LineItem{}, false
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// IsEmpty reports whether the cart has no line items.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Snapshot returns the items together with the derived totals.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// changedLocked bumps the sequence and snapshots the cart. s.mu must be held.
func (s *Store) changedLocked() model.Snapshot {
	s.seq++
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() model.Snapshot {
	snap := model.NewSnapshot(s.items)
	snap.Seq = s.seq
	return snap
}

// indexOf expects s.mu to be held.
func (s *Store) indexOf(id model.ItemID) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
