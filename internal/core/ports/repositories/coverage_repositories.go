package repositories

import (
	"context"

	"github.com/fieldserve/booking_backend/internal/core/domain"
)

// CoverageReader defines read operations for coverage lookup data
type CoverageReader interface {
	// FindAreaByCode retrieves region metadata for a normalized location code.
	// Returns apperrors.ErrNotFound for codes with no coverage-area row.
	FindAreaByCode(ctx context.Context, locationCode string) (*domain.LocationInfo, error)

	// FindActiveCandidatesByCode retrieves agents whose active service-area
	// assignment includes the exact location code, in insertion order.
	FindActiveCandidatesByCode(ctx context.Context, locationCode string) ([]domain.Candidate, error)

	// FindAdjacentCandidates retrieves agents covering areas adjacent to the
	// location code, for broadcast notification when no direct match exists.
	FindAdjacentCandidates(ctx context.Context, locationCode string) ([]domain.Candidate, error)
}

// CoverageRepositoryFacade combines all coverage-related repository interfaces
type CoverageRepositoryFacade interface {
	CoverageReader
}
