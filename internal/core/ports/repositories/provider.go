package repositories

// RepositoryProvider holds instances of all the repositories, used to wire
// the service container without naming concrete database types.
type RepositoryProvider struct {
	ReservationRepo ReservationRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	CoverageRepo    CoverageRepositoryFacade
}
