package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack/auth-platform/internal/config"
	apperrors "github.com/shopstack/auth-platform/pkg/util"
)

func TestCreateIntent_ForwardsTokenAndRelaysResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create-payment-intent", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))

		var req IntentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(2500), req.Amount)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"intentId": "pi_123", "status": "PENDING"})
	}))
	defer server.Close()

	client := NewPaymentClient(config.PaymentConfig{ServiceURL: server.URL, TimeoutSeconds: 2})

	result, err := client.CreateIntent(context.Background(), "token-123", "req-1",
		IntentRequest{Amount: 2500, Currency: "usd"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, "pi_123", result.Body["intentId"])
}

func TestCreateIntent_RelaysDownstreamErrorsVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "MISSING_AMOUNT", "message": "amount is required"},
		})
	}))
	defer server.Close()

	client := NewPaymentClient(config.PaymentConfig{ServiceURL: server.URL, TimeoutSeconds: 2})

	result, err := client.CreateIntent(context.Background(), "token-123", "",
		IntentRequest{Currency: "usd"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
}

func TestCreateIntent_TransportFailure(t *testing.T) {
	client := NewPaymentClient(config.PaymentConfig{ServiceURL: "http://127.0.0.1:1", TimeoutSeconds: 1})

	_, err := client.CreateIntent(context.Background(), "token-123", "", IntentRequest{Amount: 1, Currency: "usd"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SERVICE_UNAVAILABLE", domainErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, domainErr.HTTPStatus)
}
