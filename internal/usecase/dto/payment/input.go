package paymentdto

import (
	"time"

	"github.com/shopspring/decimal"
)

type InitiateInput struct {
	UserID string
	Amount decimal.Decimal
	// BaseURL is the public origin the provider redirects back to.
	BaseURL string
	// ClientHost is sent to the provider as X-CLIENT.
	ClientHost string
}

type CallbackInput struct {
	OrderID               string
	Status                string
	ProviderTransactionID string
}

type ReconcileInput struct {
	// Orders created before OlderThan are re-verified.
	OlderThan time.Time
	// Orders created before ExpireBefore are failed when still unverified.
	ExpireBefore time.Time
	Limit        int
}
