package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopstack/auth-platform/internal/config"
	apperrors "github.com/shopstack/auth-platform/pkg/util"
)

// PaymentClient forwards payment-intent requests from the backend service to
// the payment service, propagating the caller's bearer token and request id.
type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPaymentClient builds a client against the configured payment service.
func NewPaymentClient(cfg config.PaymentConfig) *PaymentClient {
	return &PaymentClient{
		baseURL:    cfg.ServiceURL,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

// IntentRequest is the forwarded payload.
type IntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// IntentResult carries the downstream response verbatim.
type IntentResult struct {
	StatusCode int
	Body       map[string]any
}

// CreateIntent posts the intent to the payment service and relays its
// response. Transport failures map to a service-unavailable error.
func (c *PaymentClient) CreateIntent(ctx context.Context, accessToken, requestID string, req IntentRequest) (*IntentResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/create-payment-intent", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	if requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable("payment", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.NewServiceUnavailable("payment", err)
	}

	return &IntentResult{StatusCode: resp.StatusCode, Body: body}, nil
}
