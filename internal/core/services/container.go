package services

import (
	portsrepo "github.com/fieldserve/booking_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
)

// NewContainer creates a new service container with properly initialized
// dependencies. The gateway and notifier are injected so main can pick the
// concrete adapters.
func NewContainer(repos *portsrepo.RepositoryProvider, gateway portssvc.PaymentGateway, notifier portssvc.CandidateNotifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Coverage = NewCoverageService(repos.CoverageRepo)
	container.Consistency = NewConsistencyChecker(repos.ReservationRepo, repos.LedgerRepo)
	container.Assignment = NewAssignmentService(repos.ReservationRepo, repos.CoverageRepo, container.Coverage, notifier)
	container.Booking = NewBookingService(repos.ReservationRepo, repos.LedgerRepo, gateway, container.Consistency, container.Assignment)

	return container
}
