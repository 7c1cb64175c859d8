package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	"github.com/fieldserve/booking_backend/internal/core/domain"
	portsrepo "github.com/fieldserve/booking_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/dto"
	"github.com/fieldserve/booking_backend/internal/middleware"
)

var (
	ErrAmountNotPositive     = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	ErrPaymentNotAuthorized  = fmt.Errorf("%w: payment must be authorized by the client before booking", apperrors.ErrValidation)
	ErrMissingPaymentRef     = fmt.Errorf("%w: external payment reference is required on the paid path", apperrors.ErrValidation)
	ErrConsistencyCheck      = fmt.Errorf("%w: reservation and ledger entry disagree", apperrors.ErrConflict)
	ErrCaptureNotAllowed     = fmt.Errorf("%w: reservation payment is not in a capturable state", apperrors.ErrConflict)
	ErrReservationNotCovered = errors.New("reservation has no payment leg")

	defaultCurrencyCode = "USD"
)

// sagaStep is one compensatable unit of the booking authorization saga.
// Steps are applied in order; when one fails, the already-applied prefix is
// walked backward invoking each compensate.
type sagaStep struct {
	name       string
	apply      func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// bookingService orchestrates the booking authorization saga across the
// reservation store, the payment ledger, and the external payment gateway.
// It is the only component that decides "roll back" vs "degrade gracefully";
// the leaf components just report success or failure of their one operation.
type bookingService struct {
	reservationRepo portsrepo.ReservationRepositoryFacade
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	gateway         portssvc.PaymentGateway
	checker         portssvc.ConsistencyCheckerSvc
	assignmentSvc   portssvc.AssignmentSvcFacade
}

// NewBookingService creates a new BookingSvcFacade.
func NewBookingService(
	reservationRepo portsrepo.ReservationRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	gateway portssvc.PaymentGateway,
	checker portssvc.ConsistencyCheckerSvc,
	assignmentSvc portssvc.AssignmentSvcFacade,
) portssvc.BookingSvcFacade {
	return &bookingService{
		reservationRepo: reservationRepo,
		ledgerRepo:      ledgerRepo,
		gateway:         gateway,
		checker:         checker,
		assignmentSvc:   assignmentSvc,
	}
}

// Ensure bookingService implements the facade
var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// idempotencyKey derives the gateway idempotency key for one operation of one
// reservation, so a retried call after a timeout has at most one effect.
func idempotencyKey(reservationID, operation string) string {
	return reservationID + ":" + operation
}

// ExecuteBooking runs the saga to a terminal state: a confirmed,
// ledger-consistent reservation or a fully compensated no-op. The presence of
// payment details selects the paid path.
func (s *bookingService) ExecuteBooking(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResult, error) {
	if req.Payment == nil {
		return s.executeUnpaidBooking(ctx, req)
	}
	return s.executePaidBooking(ctx, req)
}

// executePaidBooking is the paid path:
// fail-fast guard -> provisional reservation -> idempotent ledger write ->
// consistency check -> promote -> assignment hand-off.
func (s *bookingService) executePaidBooking(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payment := req.Payment

	// Fail-fast guard: rejected before any side effect, nothing to compensate.
	if payment.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}
	if payment.PaymentStatus != dto.ClientAuthorized {
		return nil, ErrPaymentNotAuthorized
	}
	if payment.ExternalPaymentRef == "" {
		return nil, ErrMissingPaymentRef
	}

	now := time.Now().UTC()
	reservationID := uuid.NewString()
	externalRef := payment.ExternalPaymentRef
	currencyCode := payment.CurrencyCode
	if currencyCode == "" {
		currencyCode = defaultCurrencyCode
	}

	pendingPayment := domain.PaymentPending
	reservation := domain.Reservation{
		ReservationID:      reservationID,
		CustomerID:         req.CustomerID,
		ServiceID:          req.ServiceID,
		ScheduledAt:        req.ScheduledAt,
		DurationMinutes:    req.DurationMinutes,
		LocationCode:       NormalizeLocationCode(req.LocationCode),
		Status:             domain.ReservationProvisional,
		Amount:             payment.Amount,
		CurrencyCode:       currencyCode,
		PaymentStatus:      &pendingPayment,
		ExternalPaymentRef: &externalRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.CustomerID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.CustomerID,
		},
	}

	// entryID is set by the ledger step: either a freshly written entry or an
	// existing one reused after a crashed or duplicated invocation.
	var entryID string

	steps := []sagaStep{
		{
			name: "create-reservation",
			apply: func(ctx context.Context) error {
				return s.reservationRepo.SaveReservation(ctx, reservation)
			},
			compensate: func(ctx context.Context) error {
				return s.reservationRepo.DeleteReservation(ctx, reservationID)
			},
		},
		{
			name: "record-authorization",
			apply: func(ctx context.Context) error {
				id, err := s.writeAuthorizationEntry(ctx, reservation, externalRef, now)
				if err != nil {
					return err
				}
				entryID = id
				return nil
			},
			// Once the authorization is recorded locally, unwinding it means
			// voiding the external authorization too. A failed cancel is a
			// recoverable accounting discrepancy and never blocks the rest of
			// the compensation.
			compensate: func(ctx context.Context) error {
				if err := s.gateway.Cancel(ctx, externalRef, "booking authorization rolled back", idempotencyKey(reservationID, "cancel")); err != nil {
					logger.Error("Compensating cancel failed, continuing compensation",
						slog.String("reservation_id", reservationID),
						slog.String("external_ref", externalRef),
						slog.String("error", err.Error()),
					)
				}
				return s.ledgerRepo.DeleteEntry(ctx, entryID)
			},
		},
		{
			name: "consistency-check",
			apply: func(ctx context.Context) error {
				result, err := s.checker.CheckReservationLedger(ctx, reservationID, externalRef)
				if err != nil {
					return err
				}
				if !result.IsHealthy {
					return fmt.Errorf("%w: %s", ErrConsistencyCheck, strings.Join(result.Issues, "; "))
				}
				return nil
			},
		},
		{
			name: "promote-reservation",
			apply: func(ctx context.Context) error {
				authorized := domain.PaymentAuthorized
				if err := s.reservationRepo.UpdateReservationStatus(ctx, reservationID, domain.ReservationAuthorized, &authorized, req.CustomerID, time.Now().UTC()); err != nil {
					return err
				}
				return s.ledgerRepo.UpdateEntryStatus(ctx, entryID, domain.EntryConfirmed, req.CustomerID)
			},
		},
	}

	if err := s.runSteps(ctx, reservationID, steps); err != nil {
		return nil, err
	}

	logger.Info("Booking authorized",
		slog.String("reservation_id", reservationID),
		slog.String("external_ref", externalRef),
		slog.String("amount", payment.Amount.String()),
	)

	return s.dispatchAssignment(ctx, reservationID), nil
}

// executeUnpaidBooking covers manually-staffed bookings: no external resource
// to unwind, so no compensation requirement.
func (s *bookingService) executeUnpaidBooking(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	pendingPayment := domain.PaymentPending
	reservation := domain.Reservation{
		ReservationID:   uuid.NewString(),
		CustomerID:      req.CustomerID,
		ServiceID:       req.ServiceID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		LocationCode:    NormalizeLocationCode(req.LocationCode),
		Status:          domain.ReservationProvisional,
		Amount:          decimal.Zero,
		CurrencyCode:    defaultCurrencyCode,
		PaymentStatus:   &pendingPayment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.CustomerID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.CustomerID,
		},
	}

	if err := s.reservationRepo.SaveReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	logger.Info("Unpaid booking created", slog.String("reservation_id", reservation.ReservationID))
	return s.dispatchAssignment(ctx, reservation.ReservationID), nil
}

// writeAuthorizationEntry performs the idempotent ledger write. An existing
// entry for (reservationID, externalRef, AUTHORIZATION) is reused, which
// covers re-invocation after a crash as well as a lost duplicate-insert race.
func (s *bookingService) writeAuthorizationEntry(ctx context.Context, reservation domain.Reservation, externalRef string, now time.Time) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.ledgerRepo.FindEntryByKey(ctx, reservation.ReservationID, externalRef, domain.RecordAuthorization)
	if err == nil {
		logger.Info("Reusing existing authorization ledger entry",
			slog.String("reservation_id", reservation.ReservationID),
			slog.String("entry_id", existing.EntryID),
		)
		return existing.EntryID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to check for existing ledger entry: %w", err)
	}

	entry := domain.LedgerEntry{
		EntryID:            uuid.NewString(),
		ReservationID:      reservation.ReservationID,
		ExternalPaymentRef: externalRef,
		Amount:             reservation.Amount,
		CurrencyCode:       reservation.CurrencyCode,
		RecordType:         domain.RecordAuthorization,
		Status:             domain.EntryPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     reservation.CustomerID,
			LastUpdatedAt: now,
			LastUpdatedBy: reservation.CustomerID,
		},
	}
	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the insert race to a concurrent duplicate invocation:
			// treat the winner's entry as already-applied.
			winner, findErr := s.ledgerRepo.FindEntryByKey(ctx, reservation.ReservationID, externalRef, domain.RecordAuthorization)
			if findErr != nil {
				return "", fmt.Errorf("duplicate ledger entry detected but not retrievable: %w", findErr)
			}
			return winner.EntryID, nil
		}
		return "", fmt.Errorf("failed to write authorization ledger entry: %w", err)
	}
	return entry.EntryID, nil
}

// runSteps applies the saga steps in order. On failure the already-applied
// prefix is compensated in reverse; a failure during compensation surfaces as
// a distinct, higher-severity error so manual reconciliation is unambiguous.
func (s *bookingService) runSteps(ctx context.Context, reservationID string, steps []sagaStep) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for i, step := range steps {
		err := step.apply(ctx)
		if err == nil {
			continue
		}

		applied := steps[:i]
		appliedNames := make([]string, len(applied))
		for j, a := range applied {
			appliedNames[j] = a.name
		}
		logger.Warn("Booking step failed, compensating",
			slog.String("reservation_id", reservationID),
			slog.String("failed_step", step.name),
			slog.Any("completed_steps", appliedNames),
			slog.String("error", err.Error()),
		)

		if compErr := s.compensateApplied(ctx, reservationID, applied); compErr != nil {
			return fmt.Errorf("booking step %s failed (%v); %w: %v", step.name, err, apperrors.ErrCompensationFailed, compErr)
		}
		return fmt.Errorf("booking step %s failed, prior steps compensated: %w", step.name, err)
	}
	return nil
}

// compensateApplied walks the applied steps backward invoking each
// compensate. Every failure is collected; none is silently swallowed.
func (s *bookingService) compensateApplied(ctx context.Context, reservationID string, applied []sagaStep) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var failures []string
	for i := len(applied) - 1; i >= 0; i-- {
		step := applied[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(ctx); err != nil {
			logger.Error("Compensation step failed",
				slog.String("reservation_id", reservationID),
				slog.String("step", step.name),
				slog.String("error", err.Error()),
			)
			failures = append(failures, fmt.Sprintf("%s: %v", step.name, err))
		}
	}
	if len(failures) > 0 {
		return errors.New(strings.Join(failures, "; "))
	}
	return nil
}

// dispatchAssignment hands the authorized reservation to the assignment
// dispatcher and maps its tagged outcome onto the client-facing result.
// Assignment-phase failures never escalate to a rollback; the reservation's
// authorized status is more valuable to preserve than agent assignment.
func (s *bookingService) dispatchAssignment(ctx context.Context, reservationID string) *dto.BookingResult {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.assignmentSvc.AssignOrNotify(ctx, reservationID)
	if err != nil {
		logger.Error("Assignment phase failed, reservation kept",
			slog.String("reservation_id", reservationID),
			slog.String("error", err.Error()),
		)
		return &dto.BookingResult{
			ReservationID: reservationID,
			Status:        dto.BookingStatusPending,
			Message:       "booking authorized; agent assignment deferred",
		}
	}

	switch assignment.Outcome {
	case dto.OutcomeDirectAssignment:
		agent := dto.ToCandidateResponse(assignment.AssignedAgent)
		return &dto.BookingResult{
			ReservationID: reservationID,
			Status:        dto.BookingStatusConfirmed,
			Message:       "confirmed",
			AssignedAgent: &agent,
		}
	default:
		notified := assignment.NotifiedCount
		return &dto.BookingResult{
			ReservationID: reservationID,
			Status:        dto.BookingStatusPending,
			Message:       fmt.Sprintf("no direct coverage available; %d candidate agents notified", notified),
			NotifiedCount: &notified,
		}
	}
}

// GetReservation retrieves a reservation together with its ledger entries.
func (s *bookingService) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, []domain.LedgerEntry, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find reservation %s: %w", reservationID, err)
	}
	entries, err := s.ledgerRepo.FindEntriesByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ledger entries for reservation %s: %w", reservationID, err)
	}
	return reservation, entries, nil
}

// CapturePayment settles a previously authorized payment and records a
// CAPTURE ledger entry under the same (reservation, externalRef, recordType)
// idempotency discipline as the authorization.
func (s *bookingService) CapturePayment(ctx context.Context, reservationID string) (*dto.CaptureResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservation %s: %w", reservationID, err)
	}
	if reservation.ExternalPaymentRef == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrReservationNotCovered, reservationID)
	}
	if reservation.PaymentStatus == nil || *reservation.PaymentStatus != domain.PaymentAuthorized {
		return nil, ErrCaptureNotAllowed
	}
	externalRef := *reservation.ExternalPaymentRef

	// Idempotent re-invocation: an existing CAPTURE entry means the capture
	// already happened.
	if existing, err := s.ledgerRepo.FindEntryByKey(ctx, reservationID, externalRef, domain.RecordCapture); err == nil {
		return &dto.CaptureResult{
			ReservationID:  reservationID,
			AmountCaptured: existing.Amount,
			Status:         string(existing.Status),
		}, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing capture entry: %w", err)
	}

	captured, err := s.gateway.Capture(ctx, externalRef, idempotencyKey(reservationID, "capture"))
	if err != nil {
		return nil, fmt.Errorf("capture failed for reservation %s: %w", reservationID, err)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:            uuid.NewString(),
		ReservationID:      reservationID,
		ExternalPaymentRef: externalRef,
		Amount:             captured,
		CurrencyCode:       reservation.CurrencyCode,
		RecordType:         domain.RecordCapture,
		Status:             domain.EntryConfirmed,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     reservation.CustomerID,
			LastUpdatedAt: now,
			LastUpdatedBy: reservation.CustomerID,
		},
	}
	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		// The remote capture succeeded but the local record did not land:
		// surface distinctly for manual reconciliation, never mask it.
		return nil, fmt.Errorf("capture succeeded remotely but ledger write failed; %w: %v", apperrors.ErrCompensationFailed, err)
	}

	captureStatus := domain.PaymentCaptured
	if err := s.reservationRepo.UpdateReservationStatus(ctx, reservationID, reservation.Status, &captureStatus, reservation.CustomerID, now); err != nil {
		logger.Error("Failed to update payment status after capture",
			slog.String("reservation_id", reservationID),
			slog.String("error", err.Error()),
		)
	}

	logger.Info("Payment captured",
		slog.String("reservation_id", reservationID),
		slog.String("amount", captured.String()),
	)
	return &dto.CaptureResult{
		ReservationID:  reservationID,
		AmountCaptured: captured,
		Status:         string(domain.EntryConfirmed),
	}, nil
}
