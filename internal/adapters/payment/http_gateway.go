// Package payment wraps the remote payment processor behind the
// services.PaymentGateway port. The processor is treated as a remote,
// fallible, idempotency-sensitive service: every call carries an
// Idempotency-Key header and a bounded timeout.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 5 * time.Second

// Config holds the gateway connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type httpGateway struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPGateway creates a PaymentGateway backed by the processor's HTTP API.
func NewHTTPGateway(cfg Config) portssvc.PaymentGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpGateway{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ensure httpGateway implements the port
var _ portssvc.PaymentGateway = (*httpGateway)(nil)

type authorizeRequest struct {
	Amount           string `json:"amount"`
	CurrencyCode     string `json:"currencyCode"`
	PaymentMethodRef string `json:"paymentMethodRef"`
}

type authorizeResponse struct {
	AuthorizationRef string `json:"authorizationRef"`
	Status           string `json:"status"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type captureResponse struct {
	AmountCaptured string `json:"amountCaptured"`
	Status         string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Authorize places a hold on the payment method and returns the external
// authorization reference.
func (g *httpGateway) Authorize(ctx context.Context, amount decimal.Decimal, currencyCode, methodRef, idempotencyKey string) (string, error) {
	body := authorizeRequest{
		Amount:           amount.String(),
		CurrencyCode:     currencyCode,
		PaymentMethodRef: methodRef,
	}
	var resp authorizeResponse
	if err := g.do(ctx, http.MethodPost, "/v1/authorizations", idempotencyKey, body, &resp); err != nil {
		return "", fmt.Errorf("gateway authorize failed: %w", err)
	}
	if resp.AuthorizationRef == "" {
		return "", fmt.Errorf("gateway authorize returned no reference (status %q)", resp.Status)
	}
	return resp.AuthorizationRef, nil
}

// Cancel voids a previously created authorization.
func (g *httpGateway) Cancel(ctx context.Context, externalRef, reason, idempotencyKey string) error {
	path := fmt.Sprintf("/v1/authorizations/%s/cancel", externalRef)
	if err := g.do(ctx, http.MethodPost, path, idempotencyKey, cancelRequest{Reason: reason}, nil); err != nil {
		return fmt.Errorf("gateway cancel failed for %s: %w", externalRef, err)
	}
	return nil
}

// Capture settles a previously created authorization.
func (g *httpGateway) Capture(ctx context.Context, externalRef, idempotencyKey string) (decimal.Decimal, error) {
	path := fmt.Sprintf("/v1/authorizations/%s/capture", externalRef)
	var resp captureResponse
	if err := g.do(ctx, http.MethodPost, path, idempotencyKey, struct{}{}, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("gateway capture failed for %s: %w", externalRef, err)
	}
	captured, err := decimal.NewFromString(resp.AmountCaptured)
	if err != nil {
		return decimal.Zero, fmt.Errorf("gateway capture returned unparseable amount %q: %w", resp.AmountCaptured, err)
	}
	return captured, nil
}

// do executes one request against the gateway with the idempotency key and a
// bounded timeout. On timeout the caller treats the call as failed even though
// the remote side may still have applied it; the idempotency key makes a
// retry safe.
func (g *httpGateway) do(ctx context.Context, method, path, idempotencyKey string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var gatewayErr errorResponse
		if json.Unmarshal(raw, &gatewayErr) == nil && gatewayErr.Error != "" {
			return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, gatewayErr.Error)
		}
		return fmt.Errorf("gateway returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Gateway call completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}
