package domain

// LocationInfo is the result of validating a location code.
type LocationInfo struct {
	IsValid         bool   `json:"isValid"`
	NormalizedCode  string `json:"normalizedCode"`
	Region          string `json:"region"`
	HasBoundaryData bool   `json:"hasBoundaryData"`
}

// Candidate is a fulfillment agent eligible for assignment to a reservation
// based on geographic service-area matching. Candidates are computed per
// lookup and never persisted as their own entity; only the winning agent
// reference (or a notified count) survives on the reservation.
type Candidate struct {
	AgentID     string `json:"agentID"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AreaID      string `json:"areaID"`   // Service-area assignment the match came from
	Priority    int    `json:"priority"` // Lower is preferred
}

// Agent is a fulfillment worker who can hold active coverage over one or more
// service areas.
type Agent struct {
	AgentID     string `json:"agentID"` // Primary Key (UUID)
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// CoverageAssignment links an agent to a service area with a selection priority.
type CoverageAssignment struct {
	AssignmentID string `json:"assignmentID"` // Primary Key (UUID)
	AgentID      string `json:"agentID"`
	AreaID       string `json:"areaID"`
	Priority     int    `json:"priority"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
