package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus indicates where a reservation is in its lifecycle.
type ReservationStatus string

const (
	ReservationProvisional       ReservationStatus = "PROVISIONAL"
	ReservationAuthorized        ReservationStatus = "AUTHORIZED"
	ReservationConfirmedAssigned ReservationStatus = "CONFIRMED_ASSIGNED"
	ReservationConfirmedPending  ReservationStatus = "CONFIRMED_PENDING_ASSIGNMENT"
	ReservationCancelled         ReservationStatus = "CANCELLED"
	ReservationFailed            ReservationStatus = "FAILED"
)

// Reservation is the database representation of a booked service slot.
type Reservation struct {
	ReservationID      string            `json:"reservationID"` // Primary Key (UUID)
	CustomerID         string            `json:"customerID"`
	ServiceID          string            `json:"serviceID"`
	ScheduledAt        time.Time         `json:"scheduledAt"`
	DurationMinutes    int               `json:"durationMinutes"`
	LocationCode       string            `json:"locationCode"`
	Status             ReservationStatus `json:"status"`
	Amount             decimal.Decimal   `json:"amount"`
	CurrencyCode       string            `json:"currencyCode"`
	PaymentStatus      *string           `json:"paymentStatus"`      // Nullable
	ExternalPaymentRef *string           `json:"externalPaymentRef"` // Nullable
	AssignedAgentID    *string           `json:"assignedAgentID"`    // Nullable
	AuditFields
}
