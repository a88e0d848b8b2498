package loader

import (
	"fmt"
	"os"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/gperfar/chatbot-admin/internal/configform"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// Resource kinds accepted by `create -f`
const (
	KindAgent      = "Agent"
	KindDataSource = "DataSource"
)

// ResourceFile is a resource definition loaded from YAML
type ResourceFile struct {
	Kind string       `json:"kind"`
	Spec ResourceSpec `json:"spec"`
}

// ResourceSpec unifies the fields of both kinds
type ResourceSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`

	// Agent
	DisplayName  string   `json:"displayName,omitempty"`
	SystemPrompt string   `json:"systemPrompt,omitempty"`
	Model        string   `json:"model,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MaxTokens    *int     `json:"maxTokens,omitempty"`
	Color        string   `json:"color,omitempty"`

	// DataSource: form fields keyed like the config payload
	Type   entity.DataSourceType `json:"type,omitempty"`
	Config map[string]string     `json:"config,omitempty"`
}

// DefaultTemperature applies when an agent file omits temperature
const DefaultTemperature = 0.7

// LoadFromFile reads and parses a resource definition
func LoadFromFile(path string) (*ResourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a resource definition and checks its kind
func Parse(data []byte) (*ResourceFile, error) {
	var resource ResourceFile
	if err := yaml.UnmarshalStrict(data, &resource); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	switch resource.Kind {
	case "":
		return nil, domain.NewMissingFieldError("kind")
	case KindAgent, KindDataSource:
	default:
		return nil, domain.NewValidationError("kind", fmt.Sprintf("must be '%s' or '%s', got '%s'", KindAgent, KindDataSource, resource.Kind))
	}
	return &resource, nil
}

func (s ResourceSpec) active() bool {
	return s.IsActive == nil || *s.IsActive
}

// AgentInput converts an Agent resource into a validated payload
func (r *ResourceFile) AgentInput() (*domain.AgentInput, error) {
	if r.Kind != KindAgent {
		return nil, fmt.Errorf("resource kind is '%s', expected '%s'", r.Kind, KindAgent)
	}

	temperature := DefaultTemperature
	if r.Spec.Temperature != nil {
		temperature = *r.Spec.Temperature
	}
	displayName := r.Spec.DisplayName
	if displayName == "" {
		displayName = r.Spec.Name
	}

	in := &domain.AgentInput{
		Name:         r.Spec.Name,
		DisplayName:  displayName,
		Description:  r.Spec.Description,
		SystemPrompt: r.Spec.SystemPrompt,
		Model:        r.Spec.Model,
		Temperature:  temperature,
		MaxTokens:    r.Spec.MaxTokens,
		IsActive:     r.Spec.active(),
		Color:        r.Spec.Color,
	}
	if err := domain.ValidateAgentInput(in); err != nil {
		return nil, err
	}
	return in, nil
}

// DataSourceForm drives a config form with a DataSource resource. The
// returned form is validated and ready to submit.
func (r *ResourceFile) DataSourceForm() (*configform.Form, error) {
	if r.Kind != KindDataSource {
		return nil, fmt.Errorf("resource kind is '%s', expected '%s'", r.Kind, KindDataSource)
	}
	if r.Spec.Type == "" {
		return nil, domain.NewMissingFieldError("type")
	}

	form := configform.New()
	if err := form.SelectType(r.Spec.Type); err != nil {
		return nil, err
	}
	if err := form.SetName(r.Spec.Name); err != nil {
		return nil, err
	}
	if err := form.SetDescription(r.Spec.Description); err != nil {
		return nil, err
	}
	if err := form.SetActive(r.Spec.active()); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(r.Spec.Config))
	for key := range r.Spec.Config {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := form.Set(key, r.Spec.Config[key]); err != nil {
			return nil, err
		}
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return form, nil
}
