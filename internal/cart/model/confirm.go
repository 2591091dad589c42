package model

import "context"

// Confirmer is the yes/no gate in front of destructive cart operations.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)

type confirmationKey struct{}

// WithConfirmation records the caller's answer to the next confirmation prompt.
func WithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmationKey{}, confirmed)
}

// ConfirmationFrom returns the answer stored by WithConfirmation.
func ConfirmationFrom(ctx context.Context) (confirmed, ok bool) {
	confirmed, ok = ctx.Value(confirmationKey{}).(bool)
	return confirmed, ok
}

// ContextConfirmer answers prompts with the value stored by WithConfirmation.
// Requests that carry no answer are declined.
type ContextConfirmer struct{}

func (ContextConfirmer) Confirm(ctx context.Context, _ string) bool {
	confirmed, _ := ConfirmationFrom(ctx)
	return confirmed
}
