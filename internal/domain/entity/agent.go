package entity

// Agent represents a configured conversational persona
type Agent struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	Description  string    `json:"description"`
	SystemPrompt string    `json:"system_prompt"`
	Model        string    `json:"model"`
	Temperature  float64   `json:"temperature"`
	MaxTokens    *int      `json:"max_tokens"`
	IsActive     bool      `json:"is_active"`
	Color        string    `json:"color"`
	CreatedAt    Timestamp `json:"created_at"`
}

// DefaultAgentColor is the color tag used when an agent has none
const DefaultAgentColor = "#3b82f6"

// ColorOrDefault returns the agent color tag, falling back to the default
func (a Agent) ColorOrDefault() string {
	if a.Color == "" {
		return DefaultAgentColor
	}
	return a.Color
}

// StatusLabel returns "Active" or "Inactive"
func (a Agent) StatusLabel() string {
	if a.IsActive {
		return "Active"
	}
	return "Inactive"
}
