package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldserve/booking_backend/internal/core/domain"
	portsrepo "github.com/fieldserve/booking_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/dto"
	"github.com/fieldserve/booking_backend/internal/middleware"
)

// assignmentService consumes an authorized reservation and either assigns the
// highest-priority coverage candidate directly or broadcasts a coverage
// request to the adjacency set. Failures in this phase never escalate to a
// reservation rollback: an authorized reservation without an agent is a safe
// degraded state, not an inconsistent one.
type assignmentService struct {
	reservationRepo portsrepo.ReservationRepositoryFacade
	coverageRepo    portsrepo.CoverageRepositoryFacade
	coverageSvc     portssvc.CoverageSvcFacade
	notifier        portssvc.CandidateNotifier
}

// NewAssignmentService creates a new AssignmentSvcFacade.
func NewAssignmentService(reservationRepo portsrepo.ReservationRepositoryFacade, coverageRepo portsrepo.CoverageRepositoryFacade, coverageSvc portssvc.CoverageSvcFacade, notifier portssvc.CandidateNotifier) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		reservationRepo: reservationRepo,
		coverageRepo:    coverageRepo,
		coverageSvc:     coverageSvc,
		notifier:        notifier,
	}
}

// Ensure assignmentService implements the facade
var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

// AssignOrNotify resolves coverage candidates for the reservation's location
// code and picks the first (highest-priority) one, or falls back to a
// broadcast notification when no direct match exists.
func (s *assignmentService) AssignOrNotify(ctx context.Context, reservationID string) (*dto.AssignmentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation %s for assignment: %w", reservationID, err)
	}

	candidates, err := s.coverageSvc.FindCandidates(ctx, reservation.LocationCode, reservation.ScheduledAt, reservation.DurationMinutes)
	if err != nil {
		// Candidate resolution failure drops to the broadcast branch; the
		// reservation is never reverted for an assignment-phase error.
		logger.Error("Candidate resolution failed, falling back to broadcast",
			slog.String("reservation_id", reservationID),
			slog.String("location_code", reservation.LocationCode),
			slog.String("error", err.Error()),
		)
		candidates = nil
	}

	now := time.Now().UTC()

	if len(candidates) > 0 {
		winner := candidates[0]
		err := s.reservationRepo.UpdateAssignedAgent(ctx, reservationID, &winner.AgentID, domain.ReservationConfirmedAssigned, winner.AgentID, now)
		if err != nil {
			// The reservation stays authorized without an agent; report the
			// failure instead of degrading silently.
			return nil, fmt.Errorf("failed to write agent assignment for reservation %s: %w", reservationID, err)
		}
		logger.Info("Reservation assigned directly",
			slog.String("reservation_id", reservationID),
			slog.String("agent_id", winner.AgentID),
		)
		return &dto.AssignmentResult{
			Outcome:       dto.OutcomeDirectAssignment,
			Status:        domain.ReservationConfirmedAssigned,
			AssignedAgent: &winner,
		}, nil
	}

	// No direct coverage: the reservation is still a confirmed booking,
	// pending manual or broadcast-driven assignment.
	if err := s.reservationRepo.UpdateReservationStatus(ctx, reservationID, domain.ReservationConfirmedPending, nil, reservation.CustomerID, now); err != nil {
		return nil, fmt.Errorf("failed to mark reservation %s pending assignment: %w", reservationID, err)
	}

	notifiedCount := 0
	adjacent, err := s.coverageRepo.FindAdjacentCandidates(ctx, coverageCodeForLookup(reservation.LocationCode))
	if err != nil {
		logger.Error("Failed to resolve adjacency notification set",
			slog.String("reservation_id", reservationID),
			slog.String("location_code", reservation.LocationCode),
			slog.String("error", err.Error()),
		)
	} else if len(adjacent) > 0 {
		notifiedCount, err = s.notifier.NotifyCandidates(ctx, reservationID, reservation.LocationCode, adjacent)
		if err != nil {
			// Fire-and-forget: an un-notified but correctly confirmed
			// reservation is recoverable by manual follow-up.
			logger.Error("Coverage request notification failed",
				slog.String("reservation_id", reservationID),
				slog.String("error", err.Error()),
			)
			notifiedCount = 0
		}
	}

	logger.Info("Reservation pending assignment",
		slog.String("reservation_id", reservationID),
		slog.Int("notified_count", notifiedCount),
	)
	return &dto.AssignmentResult{
		Outcome:       dto.OutcomeBroadcastPending,
		Status:        domain.ReservationConfirmedPending,
		NotifiedCount: notifiedCount,
	}, nil
}

// coverageCodeForLookup normalizes the stored location code before the
// adjacency lookup. Stored codes are already normalized; this keeps the
// lookup safe for records written by older clients.
func coverageCodeForLookup(locationCode string) string {
	return NormalizeLocationCode(locationCode)
}
