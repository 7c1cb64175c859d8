package repositories

import (
	"context"

	"github.com/fieldserve/booking_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger data
type LedgerReader interface {
	// FindEntryByKey retrieves a ledger entry by its idempotency key
	// (reservationID, externalPaymentRef, recordType). Returns
	// apperrors.ErrNotFound when no entry exists.
	FindEntryByKey(ctx context.Context, reservationID, externalPaymentRef string, recordType domain.RecordType) (*domain.LedgerEntry, error)

	// FindEntriesByReservation retrieves all ledger entries for a reservation.
	FindEntriesByReservation(ctx context.Context, reservationID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger data
type LedgerWriter interface {
	// SaveEntry persists a new ledger entry. Returns apperrors.ErrDuplicate
	// when an entry with the same (reservationID, externalPaymentRef,
	// recordType) already exists.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntryStatus updates the status of an existing entry.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedByUserID string) error

	// DeleteEntry hard-deletes a ledger entry. Only valid as a compensating
	// action paired with reservation deletion.
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
