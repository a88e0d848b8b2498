// Package configform maps a data-source type to its configuration schema,
// builds the config payload sent to the backend and drives the per-form
// state machine used by the create and edit flows.
package configform

import (
	"fmt"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// Payload and form keys
const (
	KeyAPIKey        = "api_key"
	KeySpreadsheetID = "spreadsheet_id"
	KeySheetName     = "sheet_name"

	KeyBaseURL    = "base_url"
	KeyEndpoint   = "endpoint"
	KeyMethod     = "method"
	KeyAuthType   = "auth_type"
	KeyAuthConfig = "auth_config"

	KeyToken    = "token"
	KeyUsername = "username"
	KeyPassword = "password"
	KeyKeyName  = "key_name"
	KeyKeyValue = "key_value"

	KeyDBType           = "db_type"
	KeyConnectionString = "connection_string"
	KeyQueryTemplate    = "query_template"
)

// Auth types accepted by rest_api sources. AuthNone means no auth_config.
const (
	AuthNone   = ""
	AuthBearer = "bearer"
	AuthBasic  = "basic"
	AuthAPIKey = "api_key"
)

// Database kinds accepted by database sources
const (
	DBPostgreSQL = "postgresql"
	DBMySQL      = "mysql"
	DBSQLite     = "sqlite"
)

const (
	DefaultSheetName = "Sheet1"
	DefaultMethod    = "GET"
	DefaultKeyName   = "X-API-Key"
	DefaultDBType    = DBPostgreSQL
)

// Field describes one input of a config form
type Field struct {
	Key      string
	Label    string
	Required bool
	Default  string
	Options  []string
	Secret   bool
	Help     string
}

// OptionLabels returns the display text of each option of f, in order.
// The empty option reads "none".
func (f Field) OptionLabels() []string {
	labels := make([]string, len(f.Options))
	for i, o := range f.Options {
		labels[i] = o
		if o == "" {
			labels[i] = "none"
		}
	}
	return labels
}

// Schema is the ordered field list of one data-source type.
// Required fields appear in the order they are checked.
type Schema struct {
	Type   entity.DataSourceType
	Fields []Field
}

var schemas = map[entity.DataSourceType]Schema{
	entity.DataSourceGoogleSheets: {
		Type: entity.DataSourceGoogleSheets,
		Fields: []Field{
			{Key: KeyAPIKey, Label: "Google API Key", Required: true, Secret: true},
			{Key: KeySpreadsheetID, Label: "Spreadsheet ID", Required: true, Help: "The ID from the spreadsheet URL"},
			{Key: KeySheetName, Label: "Sheet Name", Default: DefaultSheetName},
		},
	},
	entity.DataSourceRESTAPI: {
		Type: entity.DataSourceRESTAPI,
		Fields: []Field{
			{Key: KeyBaseURL, Label: "Base URL", Required: true, Help: "e.g. https://api.example.com"},
			{Key: KeyEndpoint, Label: "Endpoint", Help: "e.g. /v1/items"},
			{Key: KeyMethod, Label: "HTTP Method", Default: DefaultMethod, Options: []string{"GET", "POST", "PUT", "PATCH", "DELETE"}},
			{Key: KeyAuthType, Label: "Authentication", Default: AuthNone, Options: []string{AuthNone, AuthBearer, AuthBasic, AuthAPIKey}},
		},
	},
	entity.DataSourceDatabase: {
		Type: entity.DataSourceDatabase,
		Fields: []Field{
			{Key: KeyDBType, Label: "Database Type", Default: DefaultDBType, Options: []string{DBPostgreSQL, DBMySQL, DBSQLite}},
			{Key: KeyConnectionString, Label: "Connection String", Required: true, Secret: true},
			{Key: KeyQueryTemplate, Label: "Query Template", Required: true, Help: "SQL with {query} placeholder"},
		},
	},
}

var authSchemas = map[string][]Field{
	AuthBearer: {
		{Key: KeyToken, Label: "Bearer Token", Required: true, Secret: true},
	},
	AuthBasic: {
		{Key: KeyUsername, Label: "Username", Required: true},
		{Key: KeyPassword, Label: "Password", Required: true, Secret: true},
	},
	AuthAPIKey: {
		{Key: KeyKeyName, Label: "Header Name", Default: DefaultKeyName},
		{Key: KeyKeyValue, Label: "API Key", Required: true, Secret: true},
	},
}

// SchemaFor returns the schema of t
func SchemaFor(t entity.DataSourceType) (Schema, error) {
	s, ok := schemas[t]
	if !ok {
		return Schema{}, unknownType(t)
	}
	return s, nil
}

// AuthFields returns the auth_config sub-schema of a rest_api auth type.
// AuthNone has no fields.
func AuthFields(authType string) ([]Field, error) {
	if authType == AuthNone {
		return nil, nil
	}
	fields, ok := authSchemas[authType]
	if !ok {
		return nil, domain.NewValidationError(KeyAuthType, fmt.Sprintf("unsupported auth type '%s'", authType))
	}
	return fields, nil
}

// Defaults returns the fields of a freshly selected type
func Defaults(t entity.DataSourceType) (Fields, error) {
	s, err := SchemaFor(t)
	if err != nil {
		return nil, err
	}
	out := make(Fields, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Key] = f.Default
	}
	return out, nil
}

// knownKey reports whether key is a form field of t, auth fields included
func knownKey(t entity.DataSourceType, key string) bool {
	s, ok := schemas[t]
	if !ok {
		return false
	}
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	if t != entity.DataSourceRESTAPI {
		return false
	}
	for _, fields := range authSchemas {
		for _, f := range fields {
			if f.Key == key {
				return true
			}
		}
	}
	return false
}

func unknownType(t entity.DataSourceType) error {
	return domain.NewValidationError("type", fmt.Sprintf("unsupported data source type '%s'", t))
}
