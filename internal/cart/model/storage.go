package model

import "context"

// Storage is the key-value collaborator the cart persists through.
type Storage interface {
	// Read returns the value stored under key, or an error matching
	// errx.ErrNotFound when the key is absent.
	Read(ctx context.Context, key string) (string, error)

	// Write overwrites the value stored under key.
	Write(ctx context.Context, key, value string) error
}

// ================ Config ================
type CartConfig struct {
	Key         string `default:"beautique_cart"`
	CheckoutKey string `split_words:"true" default:"beautique_checkout_data"`
}

// DefaultCartConfig returns the keys the storefront pages use.
func DefaultCartConfig() CartConfig {
	return CartConfig{
		Key:         "beautique_cart",
		CheckoutKey: "beautique_checkout_data",
	}
}
