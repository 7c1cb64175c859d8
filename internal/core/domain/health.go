package domain

// HealthCheckResult is a transient value computed just-in-time by the
// consistency checker before a reservation is promoted; it is never persisted.
type HealthCheckResult struct {
	IsHealthy bool     `json:"isHealthy"`
	Issues    []string `json:"issues"`
}

// AddIssue records a failed check and marks the result unhealthy.
func (h *HealthCheckResult) AddIssue(issue string) {
	h.IsHealthy = false
	h.Issues = append(h.Issues, issue)
}
