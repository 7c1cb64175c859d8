package services

import (
	"context"

	"github.com/fieldserve/booking_backend/internal/core/domain"
)

// CandidateNotifier dispatches a fire-and-forget coverage request to a set of
// candidates. Failures are logged by the caller, never retried by the saga.
type CandidateNotifier interface {
	// NotifyCandidates returns the number of candidates notified.
	NotifyCandidates(ctx context.Context, reservationID, locationCode string, candidates []domain.Candidate) (int, error)
}
