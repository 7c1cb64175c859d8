package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	"github.com/fieldserve/booking_backend/internal/core/domain"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/core/services"
	"github.com/fieldserve/booking_backend/internal/dto"
)

// --- Test Suite ---
type AssignmentServiceTestSuite struct {
	suite.Suite
	mockReservationRepo *MockReservationRepository
	mockCoverageRepo    *MockCoverageRepository
	mockCoverageSvc     *MockCoverageService
	mockNotifier        *MockCandidateNotifier
	service             portssvc.AssignmentSvcFacade
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.mockReservationRepo = new(MockReservationRepository)
	suite.mockCoverageRepo = new(MockCoverageRepository)
	suite.mockCoverageSvc = new(MockCoverageService)
	suite.mockNotifier = new(MockCandidateNotifier)
	suite.service = services.NewAssignmentService(
		suite.mockReservationRepo,
		suite.mockCoverageRepo,
		suite.mockCoverageSvc,
		suite.mockNotifier,
	)
}

func authorizedReservation() *domain.Reservation {
	authorized := domain.PaymentAuthorized
	return &domain.Reservation{
		ReservationID:   uuid.NewString(),
		CustomerID:      uuid.NewString(),
		ScheduledAt:     time.Now().UTC().Add(24 * time.Hour),
		DurationMinutes: 60,
		LocationCode:    "60614",
		Status:          domain.ReservationAuthorized,
		PaymentStatus:   &authorized,
	}
}

// --- Test Cases ---

func (suite *AssignmentServiceTestSuite) TestAssignOrNotify_DirectAssignment_PicksHighestPriority() {
	ctx := context.Background()
	reservation := authorizedReservation()

	candidates := []domain.Candidate{
		{AgentID: "agent-a", DisplayName: "Ana Reyes", Priority: 1},
		{AgentID: "agent-b", DisplayName: "Ben Cho", Priority: 2},
	}
	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockCoverageSvc.On("FindCandidates", ctx, "60614", reservation.ScheduledAt, reservation.DurationMinutes).
		Return(candidates, nil).Once()
	suite.mockReservationRepo.On("UpdateAssignedAgent", ctx, reservation.ReservationID, mock.MatchedBy(func(agentID *string) bool {
		return agentID != nil && *agentID == "agent-a"
	}), domain.ReservationConfirmedAssigned, "agent-a", mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.AssignOrNotify(ctx, reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(dto.OutcomeDirectAssignment, result.Outcome)
	suite.Equal(domain.ReservationConfirmedAssigned, result.Status)
	suite.Require().NotNil(result.AssignedAgent)
	suite.Equal("agent-a", result.AssignedAgent.AgentID)

	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockReservationRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestAssignOrNotify_NoCandidates_BroadcastsToAdjacency() {
	ctx := context.Background()
	reservation := authorizedReservation()

	adjacent := []domain.Candidate{
		{AgentID: "agent-x", Priority: 1},
		{AgentID: "agent-y", Priority: 3},
		{AgentID: "agent-z", Priority: 5},
	}
	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockCoverageSvc.On("FindCandidates", ctx, "60614", reservation.ScheduledAt, reservation.DurationMinutes).
		Return([]domain.Candidate{}, nil).Once()
	suite.mockReservationRepo.On("UpdateReservationStatus", ctx, reservation.ReservationID, domain.ReservationConfirmedPending, (*domain.PaymentStatus)(nil), reservation.CustomerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCoverageRepo.On("FindAdjacentCandidates", ctx, "60614").Return(adjacent, nil).Once()
	suite.mockNotifier.On("NotifyCandidates", ctx, reservation.ReservationID, "60614", adjacent).Return(3, nil).Once()

	result, err := suite.service.AssignOrNotify(ctx, reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(dto.OutcomeBroadcastPending, result.Outcome)
	suite.Equal(domain.ReservationConfirmedPending, result.Status)
	suite.Equal(3, result.NotifiedCount)
	suite.Nil(result.AssignedAgent)

	suite.mockReservationRepo.AssertNotCalled(suite.T(), "UpdateAssignedAgent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestAssignOrNotify_NotificationFailure_ZeroCountNoRevert() {
	ctx := context.Background()
	reservation := authorizedReservation()

	adjacent := []domain.Candidate{{AgentID: "agent-x"}}
	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockCoverageSvc.On("FindCandidates", ctx, "60614", reservation.ScheduledAt, reservation.DurationMinutes).
		Return([]domain.Candidate{}, nil).Once()
	suite.mockReservationRepo.On("UpdateReservationStatus", ctx, reservation.ReservationID, domain.ReservationConfirmedPending, (*domain.PaymentStatus)(nil), reservation.CustomerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCoverageRepo.On("FindAdjacentCandidates", ctx, "60614").Return(adjacent, nil).Once()
	suite.mockNotifier.On("NotifyCandidates", ctx, reservation.ReservationID, "60614", adjacent).Return(0, assert.AnError).Once()

	result, err := suite.service.AssignOrNotify(ctx, reservation.ReservationID)

	// A failed broadcast still ends in a confirmed-pending reservation.
	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(dto.OutcomeBroadcastPending, result.Outcome)
	suite.Equal(0, result.NotifiedCount)
}

func (suite *AssignmentServiceTestSuite) TestAssignOrNotify_EmptyAdjacency_ZeroNotified() {
	ctx := context.Background()
	reservation := authorizedReservation()

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockCoverageSvc.On("FindCandidates", ctx, "60614", reservation.ScheduledAt, reservation.DurationMinutes).
		Return([]domain.Candidate{}, nil).Once()
	suite.mockReservationRepo.On("UpdateReservationStatus", ctx, reservation.ReservationID, domain.ReservationConfirmedPending, (*domain.PaymentStatus)(nil), reservation.CustomerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCoverageRepo.On("FindAdjacentCandidates", ctx, "60614").Return([]domain.Candidate{}, nil).Once()

	result, err := suite.service.AssignOrNotify(ctx, reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Equal(0, result.NotifiedCount)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssignOrNotify_CandidateLookupError_FallsBackToBroadcast() {
	ctx := context.Background()
	reservation := authorizedReservation()

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockCoverageSvc.On("FindCandidates", ctx, "60614", reservation.ScheduledAt, reservation.DurationMinutes).
		Return(nil, assert.AnError).Once()
	suite.mockReservationRepo.On("UpdateReservationStatus", ctx, reservation.ReservationID, domain.ReservationConfirmedPending, (*domain.PaymentStatus)(nil), reservation.CustomerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCoverageRepo.On("FindAdjacentCandidates", ctx, "60614").Return([]domain.Candidate{}, nil).Once()

	result, err := suite.service.AssignOrNotify(ctx, reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Equal(dto.OutcomeBroadcastPending, result.Outcome)
}

func (suite *AssignmentServiceTestSuite) TestAssignOrNotify_AssignmentWriteFails_ErrorSurfaces() {
	ctx := context.Background()
	reservation := authorizedReservation()

	candidates := []domain.Candidate{{AgentID: "agent-a", Priority: 1}}
	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockCoverageSvc.On("FindCandidates", ctx, "60614", reservation.ScheduledAt, reservation.DurationMinutes).
		Return(candidates, nil).Once()
	suite.mockReservationRepo.On("UpdateAssignedAgent", ctx, reservation.ReservationID, mock.Anything, domain.ReservationConfirmedAssigned, "agent-a", mock.AnythingOfType("time.Time")).
		Return(assert.AnError).Once()

	result, err := suite.service.AssignOrNotify(ctx, reservation.ReservationID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, assert.AnError)
	// The failure surfaces instead of silently dropping to broadcast.
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssignOrNotify_ReservationMissing() {
	ctx := context.Background()
	reservationID := uuid.NewString()

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservationID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.AssignOrNotify(ctx, reservationID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestAssignmentService(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}
