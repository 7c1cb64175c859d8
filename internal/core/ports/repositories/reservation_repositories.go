package repositories

import (
	"context"
	"time"

	"github.com/fieldserve/booking_backend/internal/core/domain"
)

// ReservationReader defines read operations for reservation data
type ReservationReader interface {
	// FindReservationByID retrieves a specific reservation by its unique identifier.
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)
}

// ReservationWriter defines write operations for reservation data
type ReservationWriter interface {
	// SaveReservation persists a new reservation.
	SaveReservation(ctx context.Context, reservation domain.Reservation) error

	// UpdateReservationStatus updates the status and payment status of a reservation.
	UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus, paymentStatus *domain.PaymentStatus, updatedByUserID string, updatedAt time.Time) error

	// UpdateAssignedAgent writes the assigned agent reference and the new status in one update.
	UpdateAssignedAgent(ctx context.Context, reservationID string, agentID *string, status domain.ReservationStatus, updatedByUserID string, updatedAt time.Time) error

	// DeleteReservation hard-deletes a reservation. Only valid as a
	// compensating action before the reservation reaches a confirmed state.
	DeleteReservation(ctx context.Context, reservationID string) error
}

// ReservationRepositoryFacade combines all reservation-related repository interfaces
type ReservationRepositoryFacade interface {
	ReservationReader
	ReservationWriter
}
