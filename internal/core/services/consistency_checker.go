package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	"github.com/fieldserve/booking_backend/internal/core/domain"
	portsrepo "github.com/fieldserve/booking_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/middleware"
)

// consistencyChecker re-reads a reservation and its AUTHORIZATION ledger
// entry and asserts they agree before the saga promotes the reservation.
type consistencyChecker struct {
	reservationRepo portsrepo.ReservationRepositoryFacade
	ledgerRepo      portsrepo.LedgerRepositoryFacade
}

// NewConsistencyChecker creates a new ConsistencyCheckerSvc.
func NewConsistencyChecker(reservationRepo portsrepo.ReservationRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.ConsistencyCheckerSvc {
	return &consistencyChecker{
		reservationRepo: reservationRepo,
		ledgerRepo:      ledgerRepo,
	}
}

// Ensure consistencyChecker implements the port
var _ portssvc.ConsistencyCheckerSvc = (*consistencyChecker)(nil)

// CheckReservationLedger performs the pre-promotion health check. A missing
// record or a field mismatch becomes an issue on the result; only
// infrastructure failures surface as errors.
func (c *consistencyChecker) CheckReservationLedger(ctx context.Context, reservationID, externalPaymentRef string) (domain.HealthCheckResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	result := domain.HealthCheckResult{IsHealthy: true}

	reservation, err := c.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			result.AddIssue(fmt.Sprintf("reservation %s not found on re-read", reservationID))
			return result, nil
		}
		return result, fmt.Errorf("failed to re-read reservation %s: %w", reservationID, err)
	}

	entry, err := c.ledgerRepo.FindEntryByKey(ctx, reservationID, externalPaymentRef, domain.RecordAuthorization)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			result.AddIssue(fmt.Sprintf("authorization ledger entry for reservation %s not found on re-read", reservationID))
			return result, nil
		}
		return result, fmt.Errorf("failed to re-read ledger entry for reservation %s: %w", reservationID, err)
	}

	if reservation.ExternalPaymentRef == nil || *reservation.ExternalPaymentRef != externalPaymentRef {
		result.AddIssue("reservation external payment reference does not match the authorization")
	}
	if entry.ExternalPaymentRef != externalPaymentRef {
		result.AddIssue("ledger entry external payment reference does not match the authorization")
	}
	if !reservation.Amount.Equal(entry.Amount) {
		result.AddIssue(fmt.Sprintf("amount mismatch: reservation has %s, ledger entry has %s", reservation.Amount.String(), entry.Amount.String()))
	}
	if reservation.CurrencyCode != entry.CurrencyCode {
		result.AddIssue(fmt.Sprintf("currency mismatch: reservation has %s, ledger entry has %s", reservation.CurrencyCode, entry.CurrencyCode))
	}
	if reservation.Status != domain.ReservationProvisional {
		result.AddIssue(fmt.Sprintf("reservation status is %s, expected %s before promotion", reservation.Status, domain.ReservationProvisional))
	}
	if entry.Status != domain.EntryPending {
		result.AddIssue(fmt.Sprintf("ledger entry status is %s, expected %s before promotion", entry.Status, domain.EntryPending))
	}

	if !result.IsHealthy {
		logger.Warn("Consistency check failed",
			slog.String("reservation_id", reservationID),
			slog.Any("issues", result.Issues),
		)
	}
	return result, nil
}
