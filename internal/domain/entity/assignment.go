package entity

// Assignment associates a data source with an agent.
// At most one assignment exists per (AgentID, DataSourceID).
type Assignment struct {
	ID             int64   `json:"id,omitempty"`
	AgentID        int64   `json:"agent_id"`
	DataSourceID   int64   `json:"data_source_id"`
	DataSourceName string  `json:"data_source_name,omitempty"`
	IsActive       bool    `json:"is_active"`
	Priority       int     `json:"priority"`
	QueryTrigger   *string `json:"query_trigger"`
}

// Trigger returns the query trigger, treating nil as empty
func (a Assignment) Trigger() string {
	if a.QueryTrigger == nil {
		return ""
	}
	return *a.QueryTrigger
}

// AssignmentSettings are the per-assignment values the operator can edit
type AssignmentSettings struct {
	IsActive     bool
	Priority     int
	QueryTrigger string
}

// Settings returns the editable values of a
func (a Assignment) Settings() AssignmentSettings {
	return AssignmentSettings{
		IsActive:     a.IsActive,
		Priority:     a.Priority,
		QueryTrigger: a.Trigger(),
	}
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
