package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	"github.com/fieldserve/booking_backend/internal/core/domain"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/core/services"
)

// --- Test Suite ---
type ConsistencyCheckerTestSuite struct {
	suite.Suite
	mockReservationRepo *MockReservationRepository
	mockLedgerRepo      *MockLedgerRepository
	checker             portssvc.ConsistencyCheckerSvc
}

func (suite *ConsistencyCheckerTestSuite) SetupTest() {
	suite.mockReservationRepo = new(MockReservationRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.checker = services.NewConsistencyChecker(suite.mockReservationRepo, suite.mockLedgerRepo)
}

func matchedPair() (*domain.Reservation, *domain.LedgerEntry, string) {
	reservationID := uuid.NewString()
	extRef := "auth_" + uuid.NewString()
	amount := decimal.NewFromFloat(99.99)
	pending := domain.PaymentPending

	reservation := &domain.Reservation{
		ReservationID:      reservationID,
		Status:             domain.ReservationProvisional,
		Amount:             amount,
		CurrencyCode:       "USD",
		PaymentStatus:      &pending,
		ExternalPaymentRef: &extRef,
	}
	entry := &domain.LedgerEntry{
		EntryID:            uuid.NewString(),
		ReservationID:      reservationID,
		ExternalPaymentRef: extRef,
		Amount:             amount,
		CurrencyCode:       "USD",
		RecordType:         domain.RecordAuthorization,
		Status:             domain.EntryPending,
	}
	return reservation, entry, extRef
}

// --- Test Cases ---

func (suite *ConsistencyCheckerTestSuite) TestCheck_MatchingRecords_Healthy() {
	ctx := context.Background()
	reservation, entry, extRef := matchedPair()

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByKey", ctx, reservation.ReservationID, extRef, domain.RecordAuthorization).Return(entry, nil).Once()

	result, err := suite.checker.CheckReservationLedger(ctx, reservation.ReservationID, extRef)

	suite.Require().NoError(err)
	suite.True(result.IsHealthy)
	suite.Empty(result.Issues)
}

func (suite *ConsistencyCheckerTestSuite) TestCheck_AmountMismatch_Unhealthy() {
	ctx := context.Background()
	reservation, entry, extRef := matchedPair()
	entry.Amount = decimal.NewFromFloat(9.99)

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByKey", ctx, reservation.ReservationID, extRef, domain.RecordAuthorization).Return(entry, nil).Once()

	result, err := suite.checker.CheckReservationLedger(ctx, reservation.ReservationID, extRef)

	suite.Require().NoError(err)
	suite.False(result.IsHealthy)
	suite.Len(result.Issues, 1)
	suite.Contains(result.Issues[0], "amount mismatch")
}

func (suite *ConsistencyCheckerTestSuite) TestCheck_CurrencyAndStatusMismatches_AllReported() {
	ctx := context.Background()
	reservation, entry, extRef := matchedPair()
	entry.CurrencyCode = "EUR"
	entry.Status = domain.EntryConfirmed
	reservation.Status = domain.ReservationAuthorized

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByKey", ctx, reservation.ReservationID, extRef, domain.RecordAuthorization).Return(entry, nil).Once()

	result, err := suite.checker.CheckReservationLedger(ctx, reservation.ReservationID, extRef)

	suite.Require().NoError(err)
	suite.False(result.IsHealthy)
	// Every failed check is collected, not just the first.
	suite.Len(result.Issues, 3)
}

func (suite *ConsistencyCheckerTestSuite) TestCheck_MissingEntry_UnhealthyNotError() {
	ctx := context.Background()
	reservation, _, extRef := matchedPair()

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByKey", ctx, reservation.ReservationID, extRef, domain.RecordAuthorization).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.checker.CheckReservationLedger(ctx, reservation.ReservationID, extRef)

	suite.Require().NoError(err)
	suite.False(result.IsHealthy)
	suite.Len(result.Issues, 1)
}

func (suite *ConsistencyCheckerTestSuite) TestCheck_RepoError_Surfaces() {
	ctx := context.Background()
	reservationID := uuid.NewString()

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservationID).Return(nil, assert.AnError).Once()

	_, err := suite.checker.CheckReservationLedger(ctx, reservationID, "auth_x")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

// --- Run Suite ---
func TestConsistencyChecker(t *testing.T) {
	suite.Run(t, new(ConsistencyCheckerTestSuite))
}
