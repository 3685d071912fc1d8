// Package payment wraps the card gateway behind a small interface so the
// client can be injected and faked. The concrete implementation talks to
// Braintree.
package payment

import (
	"context"
)

// Result is the outcome of a successful sale.
type Result struct {
	TransactionID string
	Status        string
	Amount        float64
	Success       bool
}

// Gateway exposes the two operations the storefront needs: a client token for
// the browser drop-in, and a sale with auto-settlement.
type Gateway interface {
	ClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, amount float64, nonce string) (*Result, error)
}
