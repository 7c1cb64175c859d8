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

type PgxReservationRepository struct {
	BaseRepository
}

// NewReservationRepository creates a new repository for reservation data.
func NewReservationRepository(pool *pgxpool.Pool) portsrepo.ReservationRepositoryFacade {
	return &PgxReservationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReservationRepository implements the facade
var _ portsrepo.ReservationRepositoryFacade = (*PgxReservationRepository)(nil)

// SaveReservation inserts a new reservation row.
func (r *PgxReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	modelReservation := mapping.ToModelReservation(reservation)
	query := `
		INSERT INTO reservations (
			reservation_id, customer_id, service_id, scheduled_at, duration_minutes,
			location_code, status, amount, currency_code, payment_status,
			external_payment_ref, assigned_agent_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelReservation.ReservationID,
		modelReservation.CustomerID,
		modelReservation.ServiceID,
		modelReservation.ScheduledAt,
		modelReservation.DurationMinutes,
		modelReservation.LocationCode,
		modelReservation.Status,
		modelReservation.Amount,
		modelReservation.CurrencyCode,
		modelReservation.PaymentStatus,
		modelReservation.ExternalPaymentRef,
		modelReservation.AssignedAgentID,
		modelReservation.CreatedAt,
		modelReservation.CreatedBy,
		modelReservation.LastUpdatedAt,
		modelReservation.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert reservation "+modelReservation.ReservationID, err)
	}
	return nil
}

// FindReservationByID retrieves a reservation by its ID.
func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	query := `
		SELECT reservation_id, customer_id, service_id, scheduled_at, duration_minutes,
		       location_code, status, amount, currency_code, payment_status,
		       external_payment_ref, assigned_agent_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM reservations
		WHERE reservation_id = $1;
	`
	var m models.Reservation
	err := r.Pool.QueryRow(ctx, query, reservationID).Scan(
		&m.ReservationID,
		&m.CustomerID,
		&m.ServiceID,
		&m.ScheduledAt,
		&m.DurationMinutes,
		&m.LocationCode,
		&m.Status,
		&m.Amount,
		&m.CurrencyCode,
		&m.PaymentStatus,
		&m.ExternalPaymentRef,
		&m.AssignedAgentID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reservation by ID "+reservationID, err)
	}

	domainReservation := mapping.ToDomainReservation(m)
	return &domainReservation, nil
}

// UpdateReservationStatus updates the status (and optionally payment status)
// of a reservation.
func (r *PgxReservationRepository) UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus, paymentStatus *domain.PaymentStatus, updatedByUserID string, updatedAt time.Time) error {
	var paymentStatusStr *string
	if paymentStatus != nil {
		ps := string(*paymentStatus)
		paymentStatusStr = &ps
	}
	query := `
		UPDATE reservations
		SET status = $2,
		    payment_status = COALESCE($3, payment_status),
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE reservation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, reservationID, string(status), paymentStatusStr, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for reservation "+reservationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAssignedAgent writes the assigned agent reference and the new status
// in a single update.
func (r *PgxReservationRepository) UpdateAssignedAgent(ctx context.Context, reservationID string, agentID *string, status domain.ReservationStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE reservations
		SET assigned_agent_id = $2,
		    status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE reservation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, reservationID, agentID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update assigned agent for reservation "+reservationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteReservation hard-deletes a reservation row. Compensating action only;
// callers must never delete a confirmed reservation.
func (r *PgxReservationRepository) DeleteReservation(ctx context.Context, reservationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reservations WHERE reservation_id = $1;`, reservationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete reservation "+reservationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
