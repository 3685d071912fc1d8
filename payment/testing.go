package payment

import (
	"context"
	"errors"
)

// ErrDeclined is what the fake gateway returns for a declined sale.
var ErrDeclined = errors.New("payment: transaction declined")

// Fake is an in-memory Gateway for tests. Zero value approves every sale.
type Fake struct {
	Token    string
	TokenErr error
	Decline  bool

	// Sales records every approved sale.
	Sales []Result
}

func (f *Fake) ClientToken(_ context.Context) (string, error) {
	if f.TokenErr != nil {
		return "", f.TokenErr
	}
	if f.Token == "" {
		return "fake-client-token", nil
	}
	return f.Token, nil
}

func (f *Fake) Sale(_ context.Context, amount float64, nonce string) (*Result, error) {
	if f.Decline {
		return nil, ErrDeclined
	}
	result := Result{
		TransactionID: "fake-txn-1",
		Status:        "submitted_for_settlement",
		Amount:        amount,
		Success:       true,
	}
	f.Sales = append(f.Sales, result)
	return &result, nil
}
