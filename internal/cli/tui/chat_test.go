package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

func typeText(m chatModel, text string) chatModel {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(chatModel)
}

func TestChatRoundTrip(t *testing.T) {
	var gotAgent int64
	var gotPrompt string
	send := func(_ context.Context, agentID int64, prompt string) (string, error) {
		gotAgent, gotPrompt = agentID, prompt
		return "Hello! How can I help?", nil
	}
	m := newModel(entity.Agent{ID: 7, DisplayName: "Support"}, send, time.Second)

	m = typeText(m, "  hi there ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(chatModel)
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Equal(t, "", m.input.Value())

	// the batch contains the request; run it directly
	reply := m.ask("hi there")()
	assert.Equal(t, int64(7), gotAgent)
	assert.Equal(t, "hi there", gotPrompt)

	updated, _ = m.Update(reply)
	m = updated.(chatModel)
	assert.False(t, m.waiting)
	require.Len(t, m.turns, 2)
	assert.Equal(t, "Support", m.turns[1].role)
	assert.Equal(t, "Hello! How can I help?", m.turns[1].content)
}

func TestChatError(t *testing.T) {
	send := func(context.Context, int64, string) (string, error) {
		return "", errors.New("POST /chat/completion: HTTP 500")
	}
	m := newModel(entity.Agent{ID: 1, DisplayName: "Bot"}, send, time.Second)

	updated, _ := m.Update(m.ask("x")())
	m = updated.(chatModel)

	require.Len(t, m.turns, 1)
	assert.True(t, m.turns[0].failed)
	assert.Contains(t, m.view.View(), "HTTP 500")
}

func TestChatIgnoresBlankPrompt(t *testing.T) {
	m := newModel(entity.Agent{ID: 1}, nil, time.Second)
	m = typeText(m, "   ")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(chatModel)

	assert.False(t, m.waiting)
	assert.Empty(t, m.turns)
}

func TestWrap(t *testing.T) {
	line := strings.Repeat("a", 25)
	assert.Equal(t, strings.Repeat("a", 12)+"\n"+strings.Repeat("a", 12)+"\na", wrap(line, 12))

	// wide runes take two cells
	assert.Equal(t, "你好你好你好\n你好", wrap("你好你好你好你好", 12))
	assert.Equal(t, "short", wrap("short", 80))
}
