package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoGatewayAvailable  = errors.New("no payment gateway available")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotPending     = errors.New("order is not pending")
	ErrGateway             = errors.New("payment gateway error")
	ErrVerificationFailed  = errors.New("payment verification failed")
	ErrUserNotFound        = errors.New("user not found")
	ErrGatewayNotFound     = errors.New("gateway not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInternal            = errors.New("internal error")
)

// GatewayError carries the provider's HTTP status and message.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("payment gateway error: %s", e.Message)
	}
	return fmt.Sprintf("payment gateway error: status %d: %s", e.StatusCode, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return ErrGateway
}
