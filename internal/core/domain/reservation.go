package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus indicates where a reservation is in its lifecycle.
type ReservationStatus string

const (
	// ReservationProvisional is the status of the saga's first write, before
	// the payment authorization has been recorded.
	ReservationProvisional ReservationStatus = "PROVISIONAL"
	// ReservationAuthorized means the payment authorization and its ledger
	// entry are in place and agree.
	ReservationAuthorized ReservationStatus = "AUTHORIZED"
	// ReservationConfirmedAssigned is a terminal success state with an agent attached.
	ReservationConfirmedAssigned ReservationStatus = "CONFIRMED_ASSIGNED"
	// ReservationConfirmedPending is a terminal success state awaiting an
	// agent; candidates (if any) have been notified.
	ReservationConfirmedPending ReservationStatus = "CONFIRMED_PENDING_ASSIGNMENT"
	ReservationCancelled        ReservationStatus = "CANCELLED"
	ReservationFailed           ReservationStatus = "FAILED"
)

// PaymentStatus tracks the payment leg of a reservation independently of the
// reservation's own lifecycle.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentAuthorized PaymentStatus = "AUTHORIZED"
	PaymentCaptured   PaymentStatus = "CAPTURED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// Reservation represents a customer's booked service slot.
//
// A reservation in AUTHORIZED or a later paid state must carry a non-nil
// ExternalPaymentRef and exactly one matching AUTHORIZATION ledger entry.
// Reservations are hard-deleted only as a compensating action before they
// reach a confirmed state; never afterwards.
type Reservation struct {
	ReservationID      string            `json:"reservationID"` // Primary Key (UUID)
	CustomerID         string            `json:"customerID"`    // Opaque customer reference
	ServiceID          string            `json:"serviceID"`     // Booked service reference
	ScheduledAt        time.Time         `json:"scheduledAt"`
	DurationMinutes    int               `json:"durationMinutes"`
	LocationCode       string            `json:"locationCode"` // Administrative-area code, normalized
	Status             ReservationStatus `json:"status"`
	Amount             decimal.Decimal   `json:"amount"`
	CurrencyCode       string            `json:"currencyCode"`
	PaymentStatus      *PaymentStatus    `json:"paymentStatus,omitempty"`      // Nil for unpaid bookings until set
	ExternalPaymentRef *string           `json:"externalPaymentRef,omitempty"` // Gateway authorization reference
	AssignedAgentID    *string           `json:"assignedAgentID,omitempty"`
	AuditFields
}

// IsConfirmed reports whether the reservation has reached a terminal success
// state. Confirmed reservations must never be deleted or rolled back.
func (r *Reservation) IsConfirmed() bool {
	return r.Status == ReservationConfirmedAssigned || r.Status == ReservationConfirmedPending
}
