package entity

import "fmt"

// Message is one turn of a conversation
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// Conversation is a conversation log produced by an agent.
// AgentID is nil when the conversation has no agent (or the agent was deleted).
type Conversation struct {
	ID           int64     `json:"id"`
	Title        *string   `json:"title"`
	AgentID      *int64    `json:"agent_id"`
	AgentName    *string   `json:"agent_name,omitempty"`
	Model        string    `json:"model,omitempty"`
	MessageCount int       `json:"message_count"`
	TotalTokens  int64     `json:"total_tokens"`
	Messages     []Message `json:"messages,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// DisplayTitle returns the title, or "Conversation <id>" when untitled
func (c Conversation) DisplayTitle() string {
	if c.Title != nil && *c.Title != "" {
		return *c.Title
	}
	return fmt.Sprintf("Conversation %d", c.ID)
}

// DisplayAgentName returns the agent name, or "No Agent"
func (c Conversation) DisplayAgentName() string {
	if c.AgentName != nil && *c.AgentName != "" {
		return *c.AgentName
	}
	return "No Agent"
}

// HasAgent reports whether the conversation references an agent
func (c Conversation) HasAgent() bool {
	return c.AgentID != nil
}

// DataSourceUsage records one data-source call made during a conversation
type DataSourceUsage struct {
	ID             int64     `json:"id,omitempty"`
	DataSourceID   int64     `json:"data_source_id,omitempty"`
	DataSourceName string    `json:"data_source_name"`
	Query          *string   `json:"query"`
	Success        bool      `json:"success"`
	DataCount      *int      `json:"data_count"`
	ErrorMessage   *string   `json:"error_message"`
	CreatedAt      Timestamp `json:"created_at"`
}

// QueryOrNA returns the query text, or "N/A"
func (u DataSourceUsage) QueryOrNA() string {
	if u.Query != nil && *u.Query != "" {
		return *u.Query
	}
	return "N/A"
}

// ConversationDetail is a full conversation with its data-source usage
type ConversationDetail struct {
	Conversation Conversation
	Usage        []DataSourceUsage
}
