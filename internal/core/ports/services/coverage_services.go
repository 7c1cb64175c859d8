package services

import (
	"context"
	"time"

	"github.com/fieldserve/booking_backend/internal/core/domain"
	"github.com/fieldserve/booking_backend/internal/dto"
)

// CoverageSvcFacade resolves location codes to coverage state and ordered
// candidate lists.
type CoverageSvcFacade interface {
	// Validate checks a location code syntactically and, when well-formed,
	// resolves its region metadata. Syntactically invalid codes short-circuit
	// without a lookup.
	Validate(ctx context.Context, locationCode string) (*domain.LocationInfo, error)

	// FindCandidates returns agents with active coverage on the exact
	// location code, ordered by priority (stable on ties).
	FindCandidates(ctx context.Context, locationCode string, scheduledAt time.Time, durationMinutes int) ([]domain.Candidate, error)

	// HasActiveCoverage reports whether any agent has active coverage there.
	HasActiveCoverage(ctx context.Context, locationCode string) (bool, error)
}

// AssignmentSvcFacade consumes a confirmed reservation and either assigns a
// candidate directly or fans out a coverage request.
type AssignmentSvcFacade interface {
	AssignOrNotify(ctx context.Context, reservationID string) (*dto.AssignmentResult, error)
}
