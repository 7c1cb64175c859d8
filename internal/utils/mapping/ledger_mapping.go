package mapping

import (
	"github.com/fieldserve/booking_backend/internal/core/domain"
	"github.com/fieldserve/booking_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:            d.EntryID,
		ReservationID:      d.ReservationID,
		ExternalPaymentRef: d.ExternalPaymentRef,
		Amount:             d.Amount,
		CurrencyCode:       d.CurrencyCode,
		RecordType:         string(d.RecordType),
		Status:             string(d.Status),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:            m.EntryID,
		ReservationID:      m.ReservationID,
		ExternalPaymentRef: m.ExternalPaymentRef,
		Amount:             m.Amount,
		CurrencyCode:       m.CurrencyCode,
		RecordType:         domain.RecordType(m.RecordType),
		Status:             domain.EntryStatus(m.Status),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
