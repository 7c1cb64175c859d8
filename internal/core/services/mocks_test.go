package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fieldserve/booking_backend/internal/core/domain"
	"github.com/fieldserve/booking_backend/internal/dto"
)

// Shared mocks for the service suites in this package.

// --- Mock ReservationRepository ---
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus, paymentStatus *domain.PaymentStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, reservationID, status, paymentStatus, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateAssignedAgent(ctx context.Context, reservationID string, agentID *string, status domain.ReservationStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, reservationID, agentID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockReservationRepository) DeleteReservation(ctx context.Context, reservationID string) error {
	args := m.Called(ctx, reservationID)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByKey(ctx context.Context, reservationID, externalPaymentRef string, recordType domain.RecordType) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, reservationID, externalPaymentRef, recordType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByReservation(ctx context.Context, reservationID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedByUserID string) error {
	args := m.Called(ctx, entryID, status, updatedByUserID)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock CoverageRepository ---
type MockCoverageRepository struct {
	mock.Mock
}

func (m *MockCoverageRepository) FindAreaByCode(ctx context.Context, locationCode string) (*domain.LocationInfo, error) {
	args := m.Called(ctx, locationCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationInfo), args.Error(1)
}

func (m *MockCoverageRepository) FindActiveCandidatesByCode(ctx context.Context, locationCode string) ([]domain.Candidate, error) {
	args := m.Called(ctx, locationCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCoverageRepository) FindAdjacentCandidates(ctx context.Context, locationCode string) ([]domain.Candidate, error) {
	args := m.Called(ctx, locationCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

// --- Mock PaymentGateway ---
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Authorize(ctx context.Context, amount decimal.Decimal, currencyCode, methodRef, idempotencyKey string) (string, error) {
	args := m.Called(ctx, amount, currencyCode, methodRef, idempotencyKey)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Cancel(ctx context.Context, externalRef, reason, idempotencyKey string) error {
	args := m.Called(ctx, externalRef, reason, idempotencyKey)
	return args.Error(0)
}

func (m *MockPaymentGateway) Capture(ctx context.Context, externalRef, idempotencyKey string) (decimal.Decimal, error) {
	args := m.Called(ctx, externalRef, idempotencyKey)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock ConsistencyChecker ---
type MockConsistencyChecker struct {
	mock.Mock
}

func (m *MockConsistencyChecker) CheckReservationLedger(ctx context.Context, reservationID, externalPaymentRef string) (domain.HealthCheckResult, error) {
	args := m.Called(ctx, reservationID, externalPaymentRef)
	return args.Get(0).(domain.HealthCheckResult), args.Error(1)
}

// --- Mock AssignmentService ---
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) AssignOrNotify(ctx context.Context, reservationID string) (*dto.AssignmentResult, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AssignmentResult), args.Error(1)
}

// --- Mock CoverageService ---
type MockCoverageService struct {
	mock.Mock
}

func (m *MockCoverageService) Validate(ctx context.Context, locationCode string) (*domain.LocationInfo, error) {
	args := m.Called(ctx, locationCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationInfo), args.Error(1)
}

func (m *MockCoverageService) FindCandidates(ctx context.Context, locationCode string, scheduledAt time.Time, durationMinutes int) ([]domain.Candidate, error) {
	args := m.Called(ctx, locationCode, scheduledAt, durationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCoverageService) HasActiveCoverage(ctx context.Context, locationCode string) (bool, error) {
	args := m.Called(ctx, locationCode)
	return args.Bool(0), args.Error(1)
}

// --- Mock CandidateNotifier ---
type MockCandidateNotifier struct {
	mock.Mock
}

func (m *MockCandidateNotifier) NotifyCandidates(ctx context.Context, reservationID, locationCode string, candidates []domain.Candidate) (int, error) {
	args := m.Called(ctx, reservationID, locationCode, candidates)
	return args.Int(0), args.Error(1)
}
