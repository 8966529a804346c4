package rupantorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/metrics"
	"github.com/shopspring/decimal"
)

const maxExcerpt = 256

type Client struct {
	client      *http.Client
	checkoutURL string
	verifyURL   string
	metrics     *metrics.PaymentMetrics
}

func NewClient(checkoutURL, verifyURL string, timeout time.Duration, m *metrics.PaymentMetrics) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		checkoutURL: checkoutURL,
		verifyURL:   verifyURL,
		metrics:     m,
	}
}

type checkoutPayload struct {
	TransactionID string      `json:"transaction_id"`
	Amount        json.Number `json:"amount"`
	SuccessURL    string      `json:"success_url"`
	FailURL       string      `json:"fail_url"`
	CancelURL     string      `json:"cancel_url"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
}

type checkoutReply struct {
	Status     any    `json:"status"`
	Message    string `json:"message"`
	PaymentURL string `json:"payment_url"`
}

type verifyPayload struct {
	AccessToken   string `json:"access_token"`
	TransactionID string `json:"transaction_id"`
}

type verifyReply struct {
	Status        string              `json:"status"`
	TransactionID string              `json:"transaction_id"`
	Amount        decimal.NullDecimal `json:"amount"`
	Message       string              `json:"message"`
}

func (c *Client) Checkout(ctx context.Context, creds domain.ProviderCredentials, req domain.CheckoutRequest) (resp *domain.CheckoutResponse, err error) {
	defer func(started time.Time) { c.metrics.ObserveProviderRequest("checkout", err, started) }(time.Now())

	headers := map[string]string{
		"X-API-KEY": creds.APIKey,
		"X-CLIENT":  creds.Client,
	}
	status, body, err := c.post(ctx, c.checkoutURL, headers, checkoutPayload{
		TransactionID: req.TransactionID,
		Amount:        json.Number(req.Amount.String()),
		SuccessURL:    req.SuccessURL,
		FailURL:       req.FailURL,
		CancelURL:     req.CancelURL,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		return nil, err
	}

	var reply checkoutReply
	if jsonErr := json.Unmarshal(body, &reply); jsonErr != nil {
		return nil, &domain.GatewayError{StatusCode: status, Message: "non-JSON checkout response: " + excerpt(body)}
	}
	if status < 200 || status >= 300 {
		return nil, &domain.GatewayError{StatusCode: status, Message: messageOr(reply.Message, body)}
	}
	if reply.PaymentURL == "" {
		return nil, &domain.GatewayError{StatusCode: status, Message: messageOr(reply.Message, body)}
	}

	return &domain.CheckoutResponse{
		PaymentURL: reply.PaymentURL,
		Message:    reply.Message,
		Raw:        body,
	}, nil
}

func (c *Client) Verify(ctx context.Context, apiKey, transactionID string) (res *domain.VerifyResult, err error) {
	defer func(started time.Time) { c.metrics.ObserveProviderRequest("verify", err, started) }(time.Now())

	status, body, err := c.post(ctx, c.verifyURL, nil, verifyPayload{
		AccessToken:   apiKey,
		TransactionID: transactionID,
	})
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &domain.GatewayError{StatusCode: status, Message: excerpt(body)}
	}

	var reply verifyReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, &domain.GatewayError{StatusCode: status, Message: "non-JSON verify response: " + excerpt(body)}
	}

	return &domain.VerifyResult{
		Status:        reply.Status,
		TransactionID: reply.TransactionID,
		Amount:        reply.Amount,
		Message:       reply.Message,
		Raw:           body,
	}, nil
}

func (c *Client) post(ctx context.Context, url string, headers map[string]string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &domain.GatewayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &domain.GatewayError{StatusCode: resp.StatusCode, Message: "failed to read response body: " + err.Error()}
	}
	return resp.StatusCode, body, nil
}

func messageOr(msg string, body []byte) string {
	if msg != "" {
		return msg
	}
	if len(body) == 0 {
		return "payment initiation failed"
	}
	return excerpt(body)
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxExcerpt {
		return s[:maxExcerpt]
	}
	return s
}
