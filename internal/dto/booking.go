package dto

import (
	"time"

	"github.com/fieldserve/booking_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClientAuthorized is the payment status a caller must present on the paid
// path: the client side already holds a gateway authorization token.
const ClientAuthorized = "authorized-by-client"

// Booking result statuses returned to the caller. Raw lower-level error text
// stays in the server logs; only these plus a human-readable message go out.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusPending   = "pending"
	BookingStatusError     = "error"
)

// PaymentDetails carries the payment leg of a booking request. Presence of
// this block selects the paid path.
type PaymentDetails struct {
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"currencyCode" binding:"omitempty,len=3"`
	PaymentStatus      string          `json:"paymentStatus" binding:"required"`
	PaymentMethodRef   string          `json:"paymentMethodRef" binding:"required"`
	ExternalPaymentRef string          `json:"externalPaymentRef" binding:"required"` // Client-held gateway authorization reference
}

// CreateBookingRequest is the input to the booking authorization saga.
type CreateBookingRequest struct {
	CustomerID      string          `json:"customerID" binding:"required"`
	ServiceID       string          `json:"serviceID" binding:"required"`
	ScheduledAt     time.Time       `json:"scheduledAt" binding:"required"`
	DurationMinutes int             `json:"durationMinutes" binding:"required,gt=0"`
	LocationCode    string          `json:"locationCode" binding:"required,locationcode"`
	Payment         *PaymentDetails `json:"payment,omitempty"`
}

// BookingResult is the client-facing outcome of a saga execution.
type BookingResult struct {
	ReservationID string             `json:"reservationID,omitempty"`
	Status        string             `json:"status"` // confirmed | pending | error
	Message       string             `json:"message"`
	AssignedAgent *CandidateResponse `json:"assignedAgent,omitempty"`
	NotifiedCount *int               `json:"notifiedCount,omitempty"`
}

// CaptureResult is the outcome of capturing a previously authorized payment.
type CaptureResult struct {
	ReservationID  string          `json:"reservationID"`
	AmountCaptured decimal.Decimal `json:"amountCaptured"`
	Status         string          `json:"status"`
}

// ReservationResponse defines the data returned for a reservation.
type ReservationResponse struct {
	ReservationID      string    `json:"reservationID"`
	CustomerID         string    `json:"customerID"`
	ServiceID          string    `json:"serviceID"`
	ScheduledAt        time.Time `json:"scheduledAt"`
	DurationMinutes    int       `json:"durationMinutes"`
	LocationCode       string    `json:"locationCode"`
	Status             string    `json:"status"`
	Amount             string    `json:"amount"`
	CurrencyCode       string    `json:"currencyCode"`
	PaymentStatus      *string   `json:"paymentStatus,omitempty"`
	ExternalPaymentRef *string   `json:"externalPaymentRef,omitempty"`
	AssignedAgentID    *string   `json:"assignedAgentID,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID            string `json:"entryID"`
	ExternalPaymentRef string `json:"externalPaymentRef"`
	Amount             string `json:"amount"`
	CurrencyCode       string `json:"currencyCode"`
	RecordType         string `json:"recordType"`
	Status             string `json:"status"`
}

// GetReservationResponse combines a reservation with its ledger entries.
type GetReservationResponse struct {
	Reservation ReservationResponse   `json:"reservation"`
	Ledger      []LedgerEntryResponse `json:"ledger"`
}

// ToReservationResponse converts a domain.Reservation to ReservationResponse.
func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ReservationID:      r.ReservationID,
		CustomerID:         r.CustomerID,
		ServiceID:          r.ServiceID,
		ScheduledAt:        r.ScheduledAt,
		DurationMinutes:    r.DurationMinutes,
		LocationCode:       r.LocationCode,
		Status:             string(r.Status),
		Amount:             r.Amount.String(),
		CurrencyCode:       r.CurrencyCode,
		ExternalPaymentRef: r.ExternalPaymentRef,
		AssignedAgentID:    r.AssignedAgentID,
		CreatedAt:          r.CreatedAt,
	}
	if r.PaymentStatus != nil {
		ps := string(*r.PaymentStatus)
		resp.PaymentStatus = &ps
	}
	return resp
}

// ToLedgerEntryResponses converts domain ledger entries to response DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = LedgerEntryResponse{
			EntryID:            e.EntryID,
			ExternalPaymentRef: e.ExternalPaymentRef,
			Amount:             e.Amount.String(),
			CurrencyCode:       e.CurrencyCode,
			RecordType:         string(e.RecordType),
			Status:             string(e.Status),
		}
	}
	return responses
}
