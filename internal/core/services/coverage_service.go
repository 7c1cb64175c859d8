package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	"github.com/fieldserve/booking_backend/internal/core/domain"
	portsrepo "github.com/fieldserve/booking_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/middleware"
)

// locationCodePattern matches a well-formed administrative-area code:
// exactly five ASCII digits after normalization.
var locationCodePattern = regexp.MustCompile(`^[0-9]{5}$`)

// ErrInvalidLocationCode is returned when a location code fails syntactic
// validation; no lookup happens in that case.
var ErrInvalidLocationCode = fmt.Errorf("%w: location code is not a valid five-digit area code", apperrors.ErrValidation)

// coverageService resolves location codes to coverage state and ordered
// candidate lists. Lookups are cached per normalized code for the life of the
// process; mappings are effectively static, so entries carry no TTL and are
// immutable once written.
type coverageService struct {
	coverageRepo portsrepo.CoverageRepositoryFacade

	mu             sync.RWMutex
	infoCache      map[string]domain.LocationInfo
	candidateCache map[string][]domain.Candidate
}

// NewCoverageService creates a new CoverageSvcFacade.
func NewCoverageService(coverageRepo portsrepo.CoverageRepositoryFacade) portssvc.CoverageSvcFacade {
	return &coverageService{
		coverageRepo:   coverageRepo,
		infoCache:      make(map[string]domain.LocationInfo),
		candidateCache: make(map[string][]domain.Candidate),
	}
}

// Ensure coverageService implements the facade
var _ portssvc.CoverageSvcFacade = (*coverageService)(nil)

// NormalizeLocationCode trims surrounding whitespace from a location code.
func NormalizeLocationCode(locationCode string) string {
	return strings.TrimSpace(locationCode)
}

// Validate checks a location code syntactically and resolves its region
// metadata. A code with zero syntactic validity short-circuits without a
// repository lookup.
func (s *coverageService) Validate(ctx context.Context, locationCode string) (*domain.LocationInfo, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	normalized := NormalizeLocationCode(locationCode)
	if !locationCodePattern.MatchString(normalized) {
		return &domain.LocationInfo{IsValid: false, NormalizedCode: normalized}, nil
	}

	s.mu.RLock()
	cached, ok := s.infoCache[normalized]
	s.mu.RUnlock()
	if ok {
		return &cached, nil
	}

	info, err := s.coverageRepo.FindAreaByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Well-formed code with no coverage-area row: syntactically valid
			// but without region metadata or boundary data.
			info = &domain.LocationInfo{IsValid: true, NormalizedCode: normalized}
		} else {
			logger.Error("Failed to look up coverage area", slog.String("location_code", normalized), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to look up coverage area for %s: %w", normalized, err)
		}
	}
	info.NormalizedCode = normalized

	s.mu.Lock()
	if existing, ok := s.infoCache[normalized]; ok {
		// Another request populated the entry first; keep it.
		info = &existing
	} else {
		s.infoCache[normalized] = *info
	}
	s.mu.Unlock()

	return info, nil
}

// FindCandidates returns agents with active coverage on the exact location
// code, ordered by priority. Ties keep the repository's insertion order
// (stable sort). The scheduling parameters are part of the lookup contract;
// matching is currently exact-code only.
func (s *coverageService) FindCandidates(ctx context.Context, locationCode string, scheduledAt time.Time, durationMinutes int) ([]domain.Candidate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	normalized := NormalizeLocationCode(locationCode)
	if !locationCodePattern.MatchString(normalized) {
		return nil, ErrInvalidLocationCode
	}

	s.mu.RLock()
	cached, ok := s.candidateCache[normalized]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	candidates, err := s.coverageRepo.FindActiveCandidatesByCode(ctx, normalized)
	if err != nil {
		logger.Error("Failed to look up coverage candidates", slog.String("location_code", normalized), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up candidates for %s: %w", normalized, err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})

	s.mu.Lock()
	if existing, ok := s.candidateCache[normalized]; ok {
		candidates = existing
	} else {
		s.candidateCache[normalized] = candidates
	}
	s.mu.Unlock()

	logger.Debug("Coverage candidates resolved",
		slog.String("location_code", normalized),
		slog.Int("candidate_count", len(candidates)),
	)
	return candidates, nil
}

// HasActiveCoverage reports whether any agent has active coverage on the code.
func (s *coverageService) HasActiveCoverage(ctx context.Context, locationCode string) (bool, error) {
	candidates, err := s.FindCandidates(ctx, locationCode, time.Time{}, 0)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return false, nil
		}
		return false, err
	}
	return len(candidates) > 0, nil
}
