package pgsql

import (
	"context"
	"errors"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	"github.com/fieldserve/booking_backend/internal/core/domain"
	portsrepo "github.com/fieldserve/booking_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCoverageRepository struct {
	BaseRepository
}

// NewCoverageRepository creates a new repository for coverage lookup data.
func NewCoverageRepository(pool *pgxpool.Pool) portsrepo.CoverageRepositoryFacade {
	return &PgxCoverageRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCoverageRepository implements the facade
var _ portsrepo.CoverageRepositoryFacade = (*PgxCoverageRepository)(nil)

// FindAreaByCode retrieves region metadata for a normalized location code.
func (r *PgxCoverageRepository) FindAreaByCode(ctx context.Context, locationCode string) (*domain.LocationInfo, error) {
	query := `
		SELECT location_code, region, has_boundary_data
		FROM coverage_areas
		WHERE location_code = $1;
	`
	info := domain.LocationInfo{IsValid: true}
	err := r.Pool.QueryRow(ctx, query, locationCode).Scan(
		&info.NormalizedCode,
		&info.Region,
		&info.HasBoundaryData,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find coverage area for code "+locationCode, err)
	}
	return &info, nil
}

// FindActiveCandidatesByCode retrieves agents whose active service-area
// assignment includes the exact location code. Rows come back in assignment
// insertion order; priority ordering is the resolver's job (stable sort).
func (r *PgxCoverageRepository) FindActiveCandidatesByCode(ctx context.Context, locationCode string) ([]domain.Candidate, error) {
	query := `
		SELECT a.agent_id, a.display_name, a.email, a.phone, ca.area_id, ca.priority
		FROM coverage_assignments ca
		JOIN coverage_areas ar ON ar.area_id = ca.area_id
		JOIN agents a ON a.agent_id = ca.agent_id
		WHERE ar.location_code = $1 AND ca.is_active AND a.is_active
		ORDER BY ca.created_at;
	`
	return r.queryCandidates(ctx, query, locationCode)
}

// FindAdjacentCandidates retrieves agents covering areas adjacent to the
// location code. Used for the broadcast fallback when no direct match exists.
func (r *PgxCoverageRepository) FindAdjacentCandidates(ctx context.Context, locationCode string) ([]domain.Candidate, error) {
	query := `
		SELECT DISTINCT ON (a.agent_id) a.agent_id, a.display_name, a.email, a.phone, ca.area_id, ca.priority
		FROM area_adjacency adj
		JOIN coverage_areas src ON src.area_id = adj.area_id
		JOIN coverage_assignments ca ON ca.area_id = adj.adjacent_area_id
		JOIN agents a ON a.agent_id = ca.agent_id
		WHERE src.location_code = $1 AND ca.is_active AND a.is_active
		ORDER BY a.agent_id, ca.priority;
	`
	return r.queryCandidates(ctx, query, locationCode)
}

func (r *PgxCoverageRepository) queryCandidates(ctx context.Context, query, locationCode string) ([]domain.Candidate, error) {
	rows, err := r.Pool.Query(ctx, query, locationCode)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query candidates for code "+locationCode, err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.AgentID, &c.DisplayName, &c.Email, &c.Phone, &c.AreaID, &c.Priority); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan candidate row", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate candidate rows", err)
	}
	return candidates, nil
}
