package models

import "github.com/shopspring/decimal"

// LedgerEntry is the database representation of a payment ledger record.
// Unique index: (reservation_id, external_payment_ref, record_type).
type LedgerEntry struct {
	EntryID            string          `json:"entryID"` // Primary Key (UUID)
	ReservationID      string          `json:"reservationID"`
	ExternalPaymentRef string          `json:"externalPaymentRef"`
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"currencyCode"`
	RecordType         string          `json:"recordType"` // AUTHORIZATION, CAPTURE, REFUND
	Status             string          `json:"status"`     // PENDING, CONFIRMED
	AuditFields
}
