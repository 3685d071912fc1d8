package payment

import (
	"context"
	"math"

	braintree "github.com/braintree-go/braintree-go"
)

// Braintree is the Gateway implementation backed by the Braintree SDK. The
// client is constructed here and injected where needed; there is no package
// level gateway instance.
type Braintree struct {
	client *braintree.Braintree
}

// NewBraintree builds a gateway client. environment is "sandbox" or
// "production".
func NewBraintree(environment, merchantID, publicKey, privateKey string) *Braintree {
	env := braintree.Sandbox
	if environment == "production" {
		env = braintree.Production
	}
	return &Braintree{
		client: braintree.New(env, merchantID, publicKey, privateKey),
	}
}

// ClientToken requests a client-usable token from the gateway.
func (b *Braintree) ClientToken(ctx context.Context) (string, error) {
	return b.client.ClientToken().Generate(ctx)
}

// Sale submits a sale for the given amount and payment method nonce with
// auto-settlement enabled. The amount is rounded to cents.
func (b *Braintree) Sale(ctx context.Context, amount float64, nonce string) (*Result, error) {
	cents := int64(math.Round(amount * 100))
	tx, err := b.client.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(cents, 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Result{
		TransactionID: tx.Id,
		Status:        string(tx.Status),
		Amount:        amount,
		Success:       true,
	}, nil
}
