package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/configform"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/domain/mocks"
	"github.com/gperfar/chatbot-admin/internal/reconciler"
)

// scriptAnswers answers prompts in order and records them. Like survey, an
// empty Input answer becomes the prompt's Default.
func scriptAnswers(t *testing.T, answers ...any) *[]survey.Prompt {
	t.Helper()
	prev := askOne
	t.Cleanup(func() { askOne = prev })

	asked := &[]survey.Prompt{}
	askOne = func(p survey.Prompt, response any, opts ...survey.AskOpt) error {
		require.NotEmpty(t, answers, "unexpected prompt %#v", p)
		answer := answers[0]
		answers = answers[1:]
		*asked = append(*asked, p)

		switch r := response.(type) {
		case *string:
			s := answer.(string)
			if in, ok := p.(*survey.Input); ok && s == "" {
				s = in.Default
			}
			*r = s
		case *int:
			*r = answer.(int)
		case *bool:
			*r = answer.(bool)
		case *[]int:
			*r = answer.([]int)
		default:
			t.Fatalf("unsupported response type %T", response)
		}
		return nil
	}
	t.Cleanup(func() {
		assert.Empty(t, answers, "unused answers")
	})
	return asked
}

func message(p survey.Prompt) string {
	switch p := p.(type) {
	case *survey.Input:
		return p.Message
	case *survey.Select:
		return p.Message
	case *survey.Confirm:
		return p.Message
	case *survey.Password:
		return p.Message
	}
	return ""
}

func TestResolveOptional(t *testing.T) {
	tests := []struct {
		answer, current, want string
	}{
		{"", "price", "price"},
		{"  ", "price", "price"},
		{"-", "price", ""},
		{" - ", "price", ""},
		{"cost", "price", "cost"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveOptional(tt.answer, tt.current), "answer %q current %q", tt.answer, tt.current)
	}
}

func loadedReconciler(t *testing.T, trigger string) *reconciler.Reconciler {
	t.Helper()
	gw := &mocks.MockGateway{}
	gw.ListDataSourcesFunc = func(ctx context.Context) ([]entity.DataSource, error) {
		return []entity.DataSource{{ID: 2, Name: "pricing", Type: entity.DataSourceGoogleSheets}}, nil
	}
	gw.ListAssignmentsFunc = func(ctx context.Context, agentID int64) ([]entity.Assignment, error) {
		return []entity.Assignment{{AgentID: agentID, DataSourceID: 2, IsActive: true, Priority: 1, QueryTrigger: &trigger}}, nil
	}
	r := reconciler.New(gw, func(context.Context) {}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, r.Load(context.Background(), 5))
	return r
}

func TestEditAssignment_QueryTrigger(t *testing.T) {
	t.Run("dash clears an existing trigger", func(t *testing.T) {
		r := loadedReconciler(t, "price")
		asked := scriptAnswers(t, 0, "", "-", true)

		require.NoError(t, editAssignment(r))

		editing, ok := r.Selection().(reconciler.Editing)
		require.True(t, ok)
		assert.Equal(t, "", editing.Draft.QueryTrigger)
		assert.Equal(t, 1, editing.Draft.Priority)
		assert.True(t, editing.Dirty())
		assert.Equal(t, "Query trigger [price] (- to clear):", message((*asked)[2]))
	})

	t.Run("empty answer keeps it", func(t *testing.T) {
		r := loadedReconciler(t, "price")
		scriptAnswers(t, 0, "", "", true)

		require.NoError(t, editAssignment(r))

		editing := r.Selection().(reconciler.Editing)
		assert.Equal(t, "price", editing.Draft.QueryTrigger)
		assert.False(t, editing.Dirty())
	})

	t.Run("new trigger and priority", func(t *testing.T) {
		r := loadedReconciler(t, "")
		asked := scriptAnswers(t, 0, "3", "refund", false)

		require.NoError(t, editAssignment(r))

		editing := r.Selection().(reconciler.Editing)
		assert.Equal(t, "refund", editing.Draft.QueryTrigger)
		assert.Equal(t, 3, editing.Draft.Priority)
		assert.False(t, editing.Draft.IsActive)
		assert.Equal(t, "Query trigger:", message((*asked)[2]))
	})
}

func restField(t *testing.T, key string) configform.Field {
	t.Helper()
	s, err := configform.SchemaFor(entity.DataSourceRESTAPI)
	require.NoError(t, err)
	for _, f := range s.Fields {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("no field %s", key)
	return configform.Field{}
}

func restForm(t *testing.T) *configform.Form {
	t.Helper()
	form := configform.New()
	require.NoError(t, form.SelectType(entity.DataSourceRESTAPI))
	require.NoError(t, form.Set(configform.KeyBaseURL, "https://api.example.com"))
	require.NoError(t, form.Set(configform.KeyEndpoint, "/v1/items"))
	return form
}

func TestPromptField_OptionalValue(t *testing.T) {
	t.Run("dash clears", func(t *testing.T) {
		form := restForm(t)
		asked := scriptAnswers(t, "-")

		require.NoError(t, promptField(form, restField(t, configform.KeyEndpoint)))
		assert.Equal(t, "", form.Field(configform.KeyEndpoint))
		assert.Equal(t, "Endpoint [/v1/items] (- to clear):", message((*asked)[0]))
	})

	t.Run("empty keeps", func(t *testing.T) {
		form := restForm(t)
		scriptAnswers(t, "")

		require.NoError(t, promptField(form, restField(t, configform.KeyEndpoint)))
		assert.Equal(t, "/v1/items", form.Field(configform.KeyEndpoint))
	})
}

func TestPromptField_AuthType(t *testing.T) {
	t.Run("none is labelled", func(t *testing.T) {
		form := restForm(t)
		asked := scriptAnswers(t, 0)

		require.NoError(t, promptField(form, restField(t, configform.KeyAuthType)))
		sel := (*asked)[0].(*survey.Select)
		assert.Equal(t, []string{"none", "bearer", "basic", "api_key"}, sel.Options)
		assert.Equal(t, "none", sel.Default)
		assert.Equal(t, configform.AuthNone, form.Field(configform.KeyAuthType))
	})

	t.Run("basic asks its fields", func(t *testing.T) {
		form := restForm(t)
		asked := scriptAnswers(t, 2, "alice", " s3cret ")

		require.NoError(t, promptField(form, restField(t, configform.KeyAuthType)))
		require.Len(t, *asked, 3)
		assert.Equal(t, configform.AuthBasic, form.Field(configform.KeyAuthType))
		assert.Equal(t, "alice", form.Field(configform.KeyUsername))
		assert.Equal(t, " s3cret ", form.Field(configform.KeyPassword))
	})
}
