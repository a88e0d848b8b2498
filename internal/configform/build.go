package configform

import (
	"fmt"
	"strings"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// Fields holds the raw string inputs of a config form, keyed by field key.
// Auth sub-fields of rest_api live alongside the top-level ones.
type Fields map[string]string

// Get returns the value of key as entered
func (f Fields) Get(key string) string {
	return f[key]
}

// blank reports whether key holds nothing but whitespace
func (f Fields) blank(key string) bool {
	return strings.TrimSpace(f[key]) == ""
}

// Clone returns a copy of f
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// BuildConfig serializes fields into the config payload of type t.
// It fails with a ValidationError naming the first missing required field;
// optional fields fall back to their defaults.
func BuildConfig(t entity.DataSourceType, fields Fields) (map[string]any, error) {
	s, err := SchemaFor(t)
	if err != nil {
		return nil, err
	}

	config := make(map[string]any, len(s.Fields)+1)
	if err := collect(s.Fields, fields, config); err != nil {
		return nil, err
	}

	if t != entity.DataSourceRESTAPI {
		return config, nil
	}

	authType := strings.TrimSpace(fields.Get(KeyAuthType))
	authFields, err := AuthFields(authType)
	if err != nil {
		return nil, err
	}
	if authType == AuthNone {
		return config, nil
	}

	authConfig := make(map[string]any, len(authFields))
	if err := collect(authFields, fields, authConfig); err != nil {
		return nil, err
	}
	config[KeyAuthConfig] = authConfig
	return config, nil
}

// collect copies values verbatim; whitespace only matters for emptiness.
// Choice fields are trimmed since they must match an option.
func collect(schema []Field, fields Fields, out map[string]any) error {
	for _, f := range schema {
		v := fields.Get(f.Key)
		switch {
		case fields.blank(f.Key) && f.Required:
			return domain.NewMissingFieldError(f.Key)
		case fields.blank(f.Key):
			v = f.Default
		case len(f.Options) > 0:
			v = strings.TrimSpace(v)
		}
		out[f.Key] = v
	}
	return nil
}

// FieldsFromConfig is the inverse of BuildConfig: it turns a stored config
// back into form fields, applying defaults for anything absent.
func FieldsFromConfig(t entity.DataSourceType, config map[string]any) (Fields, error) {
	s, err := SchemaFor(t)
	if err != nil {
		return nil, err
	}

	out := make(Fields, len(s.Fields))
	fill(s.Fields, config, out)

	if t != entity.DataSourceRESTAPI {
		return out, nil
	}

	authFields, ok := authSchemas[out[KeyAuthType]]
	if !ok {
		return out, nil
	}
	authConfig, _ := config[KeyAuthConfig].(map[string]any)
	fill(authFields, authConfig, out)
	return out, nil
}

func fill(schema []Field, config map[string]any, out Fields) {
	for _, f := range schema {
		out[f.Key] = f.Default
		raw, ok := config[f.Key]
		if !ok || raw == nil {
			continue
		}
		if v := fmt.Sprint(raw); v != "" {
			out[f.Key] = v
		}
	}
}
