package domain

import "github.com/shopspring/decimal"

// RecordType classifies a ledger entry by the payment event it records.
type RecordType string

const (
	RecordAuthorization RecordType = "AUTHORIZATION"
	RecordCapture       RecordType = "CAPTURE"
	RecordRefund        RecordType = "REFUND"
)

// EntryStatus indicates the state of a ledger entry.
type EntryStatus string

const (
	EntryPending   EntryStatus = "PENDING"
	EntryConfirmed EntryStatus = "CONFIRMED"
)

// LedgerEntry is an immutable-once-confirmed record of a payment event tied to
// a reservation. Uniqueness on (ReservationID, ExternalPaymentRef, RecordType)
// is the idempotency boundary protecting against duplicate saga execution.
type LedgerEntry struct {
	EntryID            string          `json:"entryID"` // Primary Key (UUID)
	ReservationID      string          `json:"reservationID"`
	ExternalPaymentRef string          `json:"externalPaymentRef"`
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"currencyCode"`
	RecordType         RecordType      `json:"recordType"`
	Status             EntryStatus     `json:"status"`
	AuditFields
}
