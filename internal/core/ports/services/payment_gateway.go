package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentGateway wraps the remote payment processor. Every call carries a
// caller-supplied idempotency key so that a retry after a timeout has at most
// one effect on the remote side. All calls are bounded by the adapter's
// configured timeout; a timeout is treated as failure locally even though the
// remote side may still have succeeded.
type PaymentGateway interface {
	// Authorize places a hold on the payment method and returns the external
	// authorization reference.
	Authorize(ctx context.Context, amount decimal.Decimal, currencyCode, methodRef, idempotencyKey string) (string, error)

	// Cancel voids a previously created authorization.
	Cancel(ctx context.Context, externalRef, reason, idempotencyKey string) error

	// Capture settles a previously created authorization and returns the
	// amount captured.
	Capture(ctx context.Context, externalRef, idempotencyKey string) (decimal.Decimal, error)
}
