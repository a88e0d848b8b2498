// Package analytics computes the dashboard and analytics aggregates from
// cached agents and conversations.
package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

const (
	// RecentLimit is how many conversations the dashboard lists as recent
	RecentLimit = 5
	// ActiveWindow is how recently a conversation must have been updated to count as active
	ActiveWindow = 24 * time.Hour
)

// AgentKey identifies an agent in per-agent aggregates
type AgentKey string

// NoAgent groups conversations without an agent
const NoAgent AgentKey = "no-agent"

// KeyOf returns the aggregate key of an optional agent id
func KeyOf(agentID *int64) AgentKey {
	if agentID == nil {
		return NoAgent
	}
	return AgentKey(strconv.FormatInt(*agentID, 10))
}

// AgentStats is the per-agent performance line of the dashboard
type AgentStats struct {
	AgentID       int64  `json:"agent_id"`
	DisplayName   string `json:"display_name"`
	IsActive      bool   `json:"is_active"`
	Conversations int    `json:"conversations"`
	Tokens        int64  `json:"tokens"`
}

// Summary is the dashboard overview
type Summary struct {
	TotalAgents         int                   `json:"total_agents"`
	TotalConversations  int                   `json:"total_conversations"`
	TotalTokens         int64                 `json:"total_tokens"`
	ActiveConversations int                   `json:"active_conversations"`
	Recent              []entity.Conversation `json:"recent_conversations"`
	Agents              []AgentStats          `json:"agent_performance"`
	GeneratedAt         time.Time             `json:"generated_at"`
}

// Summarize builds the dashboard overview as of now.
// Recent conversations keep the backend's order.
func Summarize(agents []entity.Agent, conversations []entity.Conversation, now time.Time) Summary {
	s := Summary{
		TotalAgents:        len(agents),
		TotalConversations: len(conversations),
		TotalTokens:        TotalTokens(conversations),
		GeneratedAt:        now,
		Recent:             make([]entity.Conversation, 0, RecentLimit),
		Agents:             make([]AgentStats, 0, len(agents)),
	}

	since := now.Add(-ActiveWindow)
	for _, c := range conversations {
		if c.UpdatedAt.After(since) {
			s.ActiveConversations++
		}
	}

	for i := 0; i < len(conversations) && i < RecentLimit; i++ {
		s.Recent = append(s.Recent, conversations[i])
	}

	counts := make(map[AgentKey]int)
	tokens := make(map[AgentKey]int64)
	for _, c := range conversations {
		k := KeyOf(c.AgentID)
		counts[k]++
		tokens[k] += c.TotalTokens
	}
	for _, a := range agents {
		k := KeyOf(&a.ID)
		s.Agents = append(s.Agents, AgentStats{
			AgentID:       a.ID,
			DisplayName:   a.DisplayName,
			IsActive:      a.IsActive,
			Conversations: counts[k],
			Tokens:        tokens[k],
		})
	}
	return s
}

// TotalTokens sums total_tokens over conversations; empty input is 0
func TotalTokens(conversations []entity.Conversation) int64 {
	var total int64
	for _, c := range conversations {
		total += c.TotalTokens
	}
	return total
}

// ConversationCounts counts conversations per agent, with agentless ones under NoAgent
func ConversationCounts(conversations []entity.Conversation) map[AgentKey]int {
	counts := make(map[AgentKey]int)
	for _, c := range conversations {
		counts[KeyOf(c.AgentID)]++
	}
	return counts
}

// AgentCount is one bar of the conversations-per-agent chart
type AgentCount struct {
	AgentID       int64  `json:"agent_id"`
	DisplayName   string `json:"display_name"`
	Conversations int    `json:"conversations"`
}

// ConversationsPerAgent lists every agent with its conversation count, in agent order
func ConversationsPerAgent(agents []entity.Agent, conversations []entity.Conversation) []AgentCount {
	counts := ConversationCounts(conversations)
	out := make([]AgentCount, 0, len(agents))
	for _, a := range agents {
		out = append(out, AgentCount{
			AgentID:       a.ID,
			DisplayName:   a.DisplayName,
			Conversations: counts[KeyOf(&a.ID)],
		})
	}
	return out
}

// DateTokens is one point of the token usage chart
type DateTokens struct {
	Date   string `json:"date"`
	Tokens int64  `json:"tokens"`
}

// TokensByDate groups tokens by UTC calendar date of creation, ascending.
// Conversations without a creation time are skipped.
func TokensByDate(conversations []entity.Conversation) []DateTokens {
	byDate := make(map[string]int64)
	for _, c := range conversations {
		if c.CreatedAt.IsZero() {
			continue
		}
		byDate[c.CreatedAt.DateString()] += c.TotalTokens
	}

	out := make([]DateTokens, 0, len(byDate))
	for date, tokens := range byDate {
		out = append(out, DateTokens{Date: date, Tokens: tokens})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Filter narrows the conversation list. Zero fields match everything.
type Filter struct {
	AgentID *int64
	// Date is a YYYY-MM-DD calendar date in UTC
	Date   string
	Search string
}

// FilterConversations returns the conversations matching f, in input order
func FilterConversations(conversations []entity.Conversation, f Filter) []entity.Conversation {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]entity.Conversation, 0, len(conversations))
	for _, c := range conversations {
		if f.AgentID != nil && (c.AgentID == nil || *c.AgentID != *f.AgentID) {
			continue
		}
		if f.Date != "" && c.CreatedAt.DateString() != f.Date {
			continue
		}
		if search != "" && !strings.Contains(searchText(c), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func searchText(c entity.Conversation) string {
	var title, agent string
	if c.Title != nil {
		title = *c.Title
	}
	if c.AgentName != nil {
		agent = *c.AgentName
	}
	return strings.ToLower(title + " " + agent)
}
