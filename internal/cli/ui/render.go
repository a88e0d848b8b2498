package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/mattn/go-runewidth"

	"github.com/gperfar/chatbot-admin/internal/analytics"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/reconciler"
)

const (
	maxCellWidth = 40
	barWidth     = 40
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Styles.Key).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.Header
			}
			return Styles.Cell
		}).
		Headers(headers...)
}

func empty(what string) string {
	return Styles.Key.Render(fmt.Sprintf("No %s found", what))
}

// RenderAgents renders the agents table; counts come from analytics.ConversationCounts
func RenderAgents(agents []entity.Agent, counts map[analytics.AgentKey]int) string {
	if len(agents) == 0 {
		return empty("agents")
	}
	t := newTable("ID", "NAME", "DISPLAY NAME", "MODEL", "STATUS", "CONVERSATIONS", "CREATED")
	for _, a := range agents {
		t.Row(
			strconv.FormatInt(a.ID, 10),
			a.Name,
			a.DisplayName,
			a.Model,
			status(a.IsActive),
			strconv.Itoa(counts[analytics.KeyOf(&a.ID)]),
			date(a.CreatedAt),
		)
	}
	return t.String()
}

// RenderAgent renders one agent as a tree
func RenderAgent(a entity.Agent) string {
	maxTokens := "-"
	if a.MaxTokens != nil {
		maxTokens = strconv.Itoa(*a.MaxTokens)
	}
	root := tree.Root(Styles.Highlight.Render(a.DisplayName) + Styles.Key.Render(" ("+a.Name+")"))
	root.Child(
		kv("ID:", strconv.FormatInt(a.ID, 10)),
		kv("Model:", a.Model),
		kv("Temperature:", strconv.FormatFloat(a.Temperature, 'f', -1, 64)),
		kv("Max tokens:", maxTokens),
		kv("Status:", status(a.IsActive)),
		kv("Color:", lipgloss.NewStyle().Foreground(lipgloss.Color(a.ColorOrDefault())).Render(a.ColorOrDefault())),
		kv("Description:", orDash(a.Description)),
		kv("System prompt:", truncate(a.SystemPrompt, 80)),
	)
	return root.String()
}

// RenderConversations renders the conversations table
func RenderConversations(conversations []entity.Conversation) string {
	if len(conversations) == 0 {
		return empty("conversations")
	}
	t := newTable("ID", "TITLE", "AGENT", "MESSAGES", "TOKENS", "DATE")
	for _, c := range conversations {
		t.Row(
			strconv.FormatInt(c.ID, 10),
			truncate(c.DisplayTitle(), maxCellWidth),
			c.DisplayAgentName(),
			strconv.Itoa(c.MessageCount),
			FormatNumber(c.TotalTokens),
			date(c.CreatedAt),
		)
	}
	return t.String()
}

// RenderConversationDetail renders a conversation with its messages and
// the data-source usage it recorded
func RenderConversationDetail(detail *entity.ConversationDetail) string {
	c := detail.Conversation
	root := tree.Root(Styles.Highlight.Render(c.DisplayTitle()))
	root.Child(
		kv("Agent:", c.DisplayAgentName()),
		kv("Messages:", strconv.Itoa(c.MessageCount)),
		kv("Total tokens:", FormatNumber(c.TotalTokens)),
		kv("Created:", dateTime(c.CreatedAt)),
	)

	messages := tree.Root(Styles.Bold.Render("Conversation"))
	if len(c.Messages) == 0 {
		messages.Child(Styles.Key.Render("(no messages)"))
	}
	for _, m := range c.Messages {
		messages.Child(Styles.Value.Render(m.Role+":") + " " + m.Content)
	}
	root.Child(messages)

	if len(detail.Usage) > 0 {
		usage := tree.Root(Styles.Bold.Render("Data Source Usage"))
		for _, u := range detail.Usage {
			node := tree.Root(Styles.Value.Render(u.DataSourceName) + " " + result(u.Success))
			node.Child(kv("Query:", u.QueryOrNA()))
			if u.DataCount != nil {
				node.Child(kv("Records:", strconv.Itoa(*u.DataCount)))
			}
			if u.ErrorMessage != nil && *u.ErrorMessage != "" {
				node.Child(kv("Error:", Styles.Inactive.Render(*u.ErrorMessage)))
			}
			node.Child(kv("At:", dateTime(u.CreatedAt)))
			usage.Child(node)
		}
		root.Child(usage)
	}
	return root.String()
}

// RenderDataSources renders the data sources table
func RenderDataSources(sources []entity.DataSource) string {
	if len(sources) == 0 {
		return empty("data sources")
	}
	t := newTable("ID", "NAME", "TYPE", "DESCRIPTION", "STATUS", "CREATED")
	for _, ds := range sources {
		t.Row(
			strconv.FormatInt(ds.ID, 10),
			ds.Name,
			ds.Type.Label(),
			truncate(ds.DescriptionOr("-"), maxCellWidth),
			status(ds.IsActive),
			date(ds.CreatedAt),
		)
	}
	return t.String()
}

// RenderTestResult renders the outcome of a connection test
func RenderTestResult(ds entity.DataSource, res *entity.DataSourceTestResult) string {
	if !res.Success {
		return fmt.Sprintf("%s %s: %s", result(false), ds.Name, orDash(res.Error))
	}
	return fmt.Sprintf("%s %s: connection successful, %d records", result(true), ds.Name, res.DataCount)
}

// RenderAssignments renders the assignment editor: assigned data sources
// with their settings, then the ones still available
func RenderAssignments(agent entity.Agent, r *reconciler.Reconciler) string {
	root := tree.Root(Styles.Highlight.Render(agent.DisplayName) + Styles.Key.Render(" data sources"))

	assigned := tree.Root(Styles.Bold.Render("Assigned"))
	if len(r.Assigned()) == 0 {
		assigned.Child(Styles.Key.Render("(none)"))
	}
	for _, ds := range r.Assigned() {
		label := fmt.Sprintf("%s %s", Styles.Value.Render(ds.Name), Styles.Key.Render("#"+strconv.FormatInt(ds.ID, 10)))
		a, persisted := r.Assignment(ds.ID)
		if !persisted {
			assigned.Child(label + " " + Styles.Active.Render("(new)"))
			continue
		}
		settings := a.Settings()
		if ed, ok := r.Selection().(reconciler.Editing); ok && ed.Assignment.DataSourceID == ds.ID {
			settings = ed.Draft
			label += " " + Styles.Highlight.Render("(editing)")
		}
		node := tree.Root(label)
		node.Child(
			kv("Priority:", strconv.Itoa(settings.Priority)),
			kv("Trigger:", orDash(settings.QueryTrigger)),
			kv("Status:", status(settings.IsActive)),
		)
		assigned.Child(node)
	}

	available := tree.Root(Styles.Bold.Render("Available"))
	if len(r.Available()) == 0 {
		available.Child(Styles.Key.Render("(none)"))
	}
	for _, ds := range r.Available() {
		available.Child(fmt.Sprintf("%s %s %s", Styles.Value.Render(ds.Name), Styles.Key.Render("#"+strconv.FormatInt(ds.ID, 10)), Styles.Key.Render(ds.Type.Label())))
	}

	root.Child(assigned, available)
	return root.String()
}

// RenderCommitResult describes what a commit applied
func RenderCommitResult(res *reconciler.CommitResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s created, %s updated, %s removed",
		Styles.Highlight.Render(strconv.Itoa(len(res.Created))),
		Styles.Highlight.Render(strconv.Itoa(len(res.Updated))),
		Styles.Highlight.Render(strconv.Itoa(len(res.Removed))),
	)
	for _, f := range res.Failures {
		b.WriteString("\n  " + Styles.Inactive.Render("✗ "+f.Error()))
	}
	for _, id := range res.Lost {
		fmt.Fprintf(&b, "\n  %s", Styles.Inactive.Render(fmt.Sprintf("data source %d was unassigned and could not be re-added", id)))
	}
	return b.String()
}

// RenderSummary renders the dashboard overview
func RenderSummary(s *analytics.Summary) string {
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Agents", strconv.Itoa(s.TotalAgents)),
		stat("Conversations", strconv.Itoa(s.TotalConversations)),
		stat("Tokens", FormatNumber(s.TotalTokens)),
		stat("Active (24h)", strconv.Itoa(s.ActiveConversations)),
	)

	recent := tree.Root(Styles.Bold.Render("Recent Conversations"))
	if len(s.Recent) == 0 {
		recent.Child(Styles.Key.Render("(none)"))
	}
	for _, c := range s.Recent {
		recent.Child(fmt.Sprintf("%s %s %s",
			Styles.Value.Render(c.DisplayTitle()),
			Styles.Key.Render(c.DisplayAgentName()),
			Styles.Key.Render(date(c.CreatedAt)),
		))
	}

	perf := tree.Root(Styles.Bold.Render("Agent Performance"))
	if len(s.Agents) == 0 {
		perf.Child(Styles.Key.Render("(none)"))
	}
	for _, a := range s.Agents {
		perf.Child(fmt.Sprintf("%s %s %s",
			Styles.Value.Render(a.DisplayName),
			status(a.IsActive),
			Styles.Key.Render(fmt.Sprintf("%d conversations • %s tokens", a.Conversations, FormatNumber(a.Tokens))),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, stats, "", recent.String(), "", perf.String())
}

// RenderAnalytics renders the two analytics charts as horizontal bars
func RenderAnalytics(tokens []analytics.DateTokens, perAgent []analytics.AgentCount) string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Token Usage"))
	b.WriteString("\n")
	if len(tokens) == 0 {
		b.WriteString(empty("token usage"))
	}
	var maxTokens int64
	for _, d := range tokens {
		maxTokens = max(maxTokens, d.Tokens)
	}
	for _, d := range tokens {
		fmt.Fprintf(&b, "%s %s %s\n", d.Date, bar(d.Tokens, maxTokens), FormatNumber(d.Tokens))
	}

	b.WriteString("\n")
	b.WriteString(Styles.Title.Render("Conversations per Agent"))
	b.WriteString("\n")
	if len(perAgent) == 0 {
		b.WriteString(empty("agents"))
	}
	width := 0
	for _, a := range perAgent {
		width = max(width, runewidth.StringWidth(a.DisplayName))
	}
	var maxConvs int64
	for _, a := range perAgent {
		maxConvs = max(maxConvs, int64(a.Conversations))
	}
	for _, a := range perAgent {
		fmt.Fprintf(&b, "%s %s %d\n", runewidth.FillRight(a.DisplayName, width), bar(int64(a.Conversations), maxConvs), a.Conversations)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatNumber groups digits by thousands: 1234567 -> 1,234,567
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func bar(v, peak int64) string {
	if peak <= 0 {
		return ""
	}
	n := int(v * barWidth / peak)
	if n == 0 && v > 0 {
		n = 1
	}
	return Styles.Highlight.Render(strings.Repeat("█", n))
}

func stat(label, v string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 2).
		Render(Styles.Key.Render(label) + "\n" + Styles.Bold.Render(v))
}

func kv(key, v string) string {
	return Styles.Key.Render(key) + " " + v
}

func status(active bool) string {
	if active {
		return Styles.Active.Render("Active")
	}
	return Styles.Inactive.Render("Inactive")
}

func result(ok bool) string {
	if ok {
		return Styles.Active.Render("✓ Success")
	}
	return Styles.Inactive.Render("✗ Failed")
}

func date(t entity.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.DateString()
}

func dateTime(t entity.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "…")
}
