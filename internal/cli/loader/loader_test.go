package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

const agentYAML = `
kind: Agent
spec:
  name: support
  displayName: Support Bot
  systemPrompt: You answer billing questions.
  model: gpt-4
  maxTokens: 512
`

func TestLoadAgent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(agentYAML), 0o644))

	res, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, KindAgent, res.Kind)

	in, err := res.AgentInput()
	require.NoError(t, err)
	assert.Equal(t, "Support Bot", in.DisplayName)
	assert.Equal(t, DefaultTemperature, in.Temperature)
	assert.True(t, in.IsActive)
	require.NotNil(t, in.MaxTokens)
	assert.Equal(t, 512, *in.MaxTokens)

	_, err = res.DataSourceForm()
	assert.Error(t, err)
}

func TestAgentMissingPrompt(t *testing.T) {
	res, err := Parse([]byte("kind: Agent\nspec:\n  name: x\n  model: gpt-4\n"))
	require.NoError(t, err)

	_, err = res.AgentInput()
	assert.True(t, domain.IsValidation(err))
}

func TestLoadDataSource(t *testing.T) {
	res, err := Parse([]byte(`
kind: DataSource
spec:
  name: crm
  type: rest_api
  isActive: false
  config:
    base_url: https://crm.example.com
    endpoint: /v1/contacts
    auth_type: basic
    username: a
    password: b
`))
	require.NoError(t, err)

	form, err := res.DataSourceForm()
	require.NoError(t, err)

	in, err := form.Input()
	require.NoError(t, err)
	assert.Equal(t, entity.DataSourceRESTAPI, in.Type)
	assert.False(t, in.IsActive)
	assert.Equal(t, "https://crm.example.com", in.Config["base_url"])
	assert.Equal(t, "GET", in.Config["method"])
	assert.Equal(t, map[string]any{"username": "a", "password": "b"}, in.Config["auth_config"])
}

func TestDataSourceErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"missing type", "kind: DataSource\nspec:\n  name: x\n", "type"},
		{"unknown field", "kind: DataSource\nspec:\n  name: x\n  type: google_sheets\n  config:\n    host: db\n", "host"},
		{"missing required", "kind: DataSource\nspec:\n  name: x\n  type: google_sheets\n  config:\n    api_key: k\n", "spreadsheet_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = res.DataSourceForm()
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParseKind(t *testing.T) {
	_, err := Parse([]byte("spec:\n  name: x\n"))
	assert.True(t, domain.IsValidation(err))

	_, err = Parse([]byte("kind: DataAgentContainer\n"))
	assert.True(t, domain.IsValidation(err))

	_, err = Parse([]byte("kind: Agent\nbogus: 1\n"))
	assert.Error(t, err)
}
