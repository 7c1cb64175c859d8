package services

import (
	"context"

	"github.com/fieldserve/booking_backend/internal/core/domain"
	"github.com/fieldserve/booking_backend/internal/dto"
)

// BookingWriterSvc defines the saga-facing booking operations
type BookingWriterSvc interface {
	// ExecuteBooking runs the booking authorization saga to a terminal state:
	// either a confirmed, ledger-consistent reservation or a fully
	// compensated no-op.
	ExecuteBooking(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResult, error)

	// CapturePayment captures a previously authorized payment and records a
	// CAPTURE ledger entry under the same idempotency discipline.
	CapturePayment(ctx context.Context, reservationID string) (*dto.CaptureResult, error)
}

// BookingReaderSvc defines read operations for bookings
type BookingReaderSvc interface {
	// GetReservation retrieves a reservation together with its ledger entries.
	GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, []domain.LedgerEntry, error)
}

// BookingSvcFacade combines all booking-related service interfaces
type BookingSvcFacade interface {
	BookingWriterSvc
	BookingReaderSvc
}

// ConsistencyCheckerSvc re-reads a reservation and its ledger entry
// immediately before the promote step and asserts they agree.
type ConsistencyCheckerSvc interface {
	// CheckReservationLedger returns an unhealthy result with the list of
	// failed checks when the reservation and its AUTHORIZATION ledger entry
	// disagree on amount, identifiers, or status.
	CheckReservationLedger(ctx context.Context, reservationID, externalPaymentRef string) (domain.HealthCheckResult, error)
}
