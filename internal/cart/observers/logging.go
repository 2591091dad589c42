package observers

import (
	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/cart/store"
	"github.com/rs/zerolog"
)

// NewLogObserver returns a store observer that logs each cart change.
func NewLogObserver(logger zerolog.Logger) store.Observer {
	return func(snap model.Snapshot) {
		logger.Debug().
			Uint64("seq", snap.Seq).
			Int("lines", len(snap.Items)).
			Int("item_count", snap.ItemCount).
			Str("total", snap.Total.StringFixed(2)).
			Bool("empty", snap.Empty).
			Msg("cart changed")
	}
}

// Attach subscribes every observer to s and returns one func that detaches them all.
func Attach(s *store.Store, obs ...store.Observer) (detach func()) {
	unsubs := make([]func(), 0, len(obs))
	for _, o := range obs {
		unsubs = append(unsubs, s.Subscribe(o))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
