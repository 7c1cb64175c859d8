package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/booking_backend/internal/adapters/payment"
)

func TestAuthorize_Success(t *testing.T) {
	var gotIdempotencyKey, gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/authorizations", r.URL.Path)
		gotIdempotencyKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"authorizationRef": "auth_abc123",
			"status":           "authorized",
		})
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL, APIKey: "sk_test"})

	ref, err := gateway.Authorize(context.Background(), decimal.NewFromFloat(49.99), "USD", "pm_visa", "res-1:authorize")

	require.NoError(t, err)
	assert.Equal(t, "auth_abc123", ref)
	assert.Equal(t, "res-1:authorize", gotIdempotencyKey)
	assert.Equal(t, "Bearer sk_test", gotAuth)
	assert.Equal(t, "49.99", gotBody["amount"])
	assert.Equal(t, "USD", gotBody["currencyCode"])
	assert.Equal(t, "pm_visa", gotBody["paymentMethodRef"])
}

func TestAuthorize_GatewayErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "card declined"})
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL})

	_, err := gateway.Authorize(context.Background(), decimal.NewFromInt(10), "USD", "pm_visa", "res-1:authorize")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "card declined")
}

func TestAuthorize_MissingReferenceRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "pending"})
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL})

	_, err := gateway.Authorize(context.Background(), decimal.NewFromInt(10), "USD", "pm_visa", "res-1:authorize")

	require.Error(t, err)
}

func TestCancel_Success(t *testing.T) {
	var gotPath, gotKey, gotReason string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Idempotency-Key")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotReason = body["reason"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL})

	err := gateway.Cancel(context.Background(), "auth_abc123", "booking rolled back", "res-1:cancel")

	require.NoError(t, err)
	assert.Equal(t, "/v1/authorizations/auth_abc123/cancel", gotPath)
	assert.Equal(t, "res-1:cancel", gotKey)
	assert.Equal(t, "booking rolled back", gotReason)
}

func TestCapture_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/authorizations/auth_abc123/capture", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"amountCaptured": "49.99",
			"status":         "captured",
		})
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL})

	captured, err := gateway.Capture(context.Background(), "auth_abc123", "res-1:capture")

	require.NoError(t, err)
	assert.True(t, captured.Equal(decimal.NewFromFloat(49.99)))
}

func TestCapture_UnparseableAmount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"amountCaptured": "not-a-number"})
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL})

	_, err := gateway.Capture(context.Background(), "auth_abc123", "res-1:capture")

	require.Error(t, err)
}

func TestDo_TimeoutBoundsTheCall(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	err := gateway.Cancel(context.Background(), "auth_slow", "timeout test", "res-1:cancel")

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
