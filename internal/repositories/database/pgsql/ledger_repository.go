package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	"github.com/fieldserve/booking_backend/internal/core/domain"
	portsrepo "github.com/fieldserve/booking_backend/internal/core/ports/repositories"
	"github.com/fieldserve/booking_backend/internal/models"
	"github.com/fieldserve/booking_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a new repository for payment ledger data.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements the facade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// FindEntryByKey retrieves a ledger entry by its idempotency key. The unique
// index on (reservation_id, external_payment_ref, record_type) guarantees at
// most one row.
func (r *PgxLedgerRepository) FindEntryByKey(ctx context.Context, reservationID, externalPaymentRef string, recordType domain.RecordType) (*domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, reservation_id, external_payment_ref, amount, currency_code,
		       record_type, status, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE reservation_id = $1 AND external_payment_ref = $2 AND record_type = $3;
	`
	var m models.LedgerEntry
	err := r.Pool.QueryRow(ctx, query, reservationID, externalPaymentRef, string(recordType)).Scan(
		&m.EntryID,
		&m.ReservationID,
		&m.ExternalPaymentRef,
		&m.Amount,
		&m.CurrencyCode,
		&m.RecordType,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry for reservation "+reservationID, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(m)
	return &domainEntry, nil
}

// FindEntriesByReservation retrieves all ledger entries for a reservation.
func (r *PgxLedgerRepository) FindEntriesByReservation(ctx context.Context, reservationID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, reservation_id, external_payment_ref, amount, currency_code,
		       record_type, status, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE reservation_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, reservationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for reservation "+reservationID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.ReservationID,
			&m.ExternalPaymentRef,
			&m.Amount,
			&m.CurrencyCode,
			&m.RecordType,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger entry rows", err)
	}
	return entries, nil
}

// SaveEntry inserts a new ledger entry. A concurrent duplicate insert loses
// against the unique index and surfaces as ErrDuplicate, which callers treat
// as already-applied.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (
			entry_id, reservation_id, external_payment_ref, amount, currency_code,
			record_type, status, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.ReservationID,
		m.ExternalPaymentRef,
		m.Amount,
		m.CurrencyCode,
		m.RecordType,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.EntryID, err)
	}
	return nil
}

// UpdateEntryStatus updates the status of an existing entry.
func (r *PgxLedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedByUserID string) error {
	query := `
		UPDATE ledger_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, string(status), time.Now().UTC(), updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry hard-deletes a ledger entry. Compensating action only.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
