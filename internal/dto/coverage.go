package dto

import "github.com/fieldserve/booking_backend/internal/core/domain"

// AssignmentOutcome tags the two valid successful outcomes of the
// assignment/notification phase.
type AssignmentOutcome string

const (
	// OutcomeDirectAssignment means the highest-priority candidate was
	// written to the reservation.
	OutcomeDirectAssignment AssignmentOutcome = "DIRECT_ASSIGNMENT"
	// OutcomeBroadcastPending means no direct candidate existed and a
	// coverage request was broadcast to the adjacency set.
	OutcomeBroadcastPending AssignmentOutcome = "BROADCAST_PENDING"
)

// AssignmentResult is the outcome of AssignOrNotify. Both variants are
// successful terminal states of the booking operation.
type AssignmentResult struct {
	Outcome       AssignmentOutcome        `json:"outcome"`
	Status        domain.ReservationStatus `json:"status"`
	AssignedAgent *domain.Candidate        `json:"assignedAgent,omitempty"`
	NotifiedCount int                      `json:"notifiedCount"`
}

// CandidateResponse defines the data returned for a coverage candidate.
type CandidateResponse struct {
	AgentID     string `json:"agentID"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Priority    int    `json:"priority"`
}

// CoverageSummaryResponse combines location validation with coverage state.
type CoverageSummaryResponse struct {
	IsValid           bool   `json:"isValid"`
	NormalizedCode    string `json:"normalizedCode,omitempty"`
	Region            string `json:"region,omitempty"`
	HasBoundaryData   bool   `json:"hasBoundaryData"`
	HasActiveCoverage bool   `json:"hasActiveCoverage"`
}

// ListCandidatesResponse wraps an ordered candidate list.
type ListCandidatesResponse struct {
	LocationCode string              `json:"locationCode"`
	Candidates   []CandidateResponse `json:"candidates"`
}

// ToCandidateResponse converts a domain.Candidate to CandidateResponse.
func ToCandidateResponse(c *domain.Candidate) CandidateResponse {
	return CandidateResponse{
		AgentID:     c.AgentID,
		DisplayName: c.DisplayName,
		Email:       c.Email,
		Phone:       c.Phone,
		Priority:    c.Priority,
	}
}

// ToCandidateResponses converts a slice of domain.Candidate to response DTOs.
func ToCandidateResponses(candidates []domain.Candidate) []CandidateResponse {
	responses := make([]CandidateResponse, len(candidates))
	for i := range candidates {
		responses[i] = ToCandidateResponse(&candidates[i])
	}
	return responses
}
