package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type ProviderCredentials struct {
	APIKey string
	Client string
}

type CheckoutRequest struct {
	TransactionID string
	Amount        decimal.Decimal
	SuccessURL    string
	FailURL       string
	CancelURL     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type CheckoutResponse struct {
	PaymentURL string
	Message    string
	Raw        []byte
}

const ProviderStatusCompleted = "COMPLETED"

type VerifyResult struct {
	Status        string
	TransactionID string
	Amount        decimal.NullDecimal
	Message       string
	Raw           []byte
}

// Completed reports whether the provider confirmed the payment.
func (v *VerifyResult) Completed() bool {
	return v != nil && v.Status == ProviderStatusCompleted
}

type PaymentProvider interface {
	Checkout(ctx context.Context, creds ProviderCredentials, req CheckoutRequest) (*CheckoutResponse, error)
	Verify(ctx context.Context, apiKey, transactionID string) (*VerifyResult, error)
}
