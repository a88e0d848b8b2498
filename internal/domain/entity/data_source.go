package entity

import "strings"

// DataSourceType is the closed set of supported data-source kinds
type DataSourceType string

const (
	DataSourceGoogleSheets DataSourceType = "google_sheets"
	DataSourceRESTAPI      DataSourceType = "rest_api"
	DataSourceDatabase     DataSourceType = "database"
)

// DataSourceTypes lists every supported type in display order
var DataSourceTypes = []DataSourceType{
	DataSourceGoogleSheets,
	DataSourceRESTAPI,
	DataSourceDatabase,
}

// Valid reports whether t is one of the supported types
func (t DataSourceType) Valid() bool {
	for _, known := range DataSourceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the human label, e.g. "REST API"
func (t DataSourceType) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
}

// Description returns the short help text shown when the type is chosen
func (t DataSourceType) Description() string {
	switch t {
	case DataSourceGoogleSheets:
		return "Connect to Google Sheets to fetch data from spreadsheets. You'll need a Google API key and the spreadsheet ID."
	case DataSourceRESTAPI:
		return "Connect to REST APIs to fetch data from web services. Configure authentication and endpoints."
	case DataSourceDatabase:
		return "Connect to databases for direct querying. Currently supports PostgreSQL, MySQL, and SQLite."
	default:
		return ""
	}
}

// DataSource is an external system an agent may query for grounding data.
// The shape of Config is fully determined by Type.
type DataSource struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Type        DataSourceType `json:"type"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   Timestamp      `json:"created_at"`
}

// DescriptionOr returns the description, or fallback when empty
func (d DataSource) DescriptionOr(fallback string) string {
	if d.Description == "" {
		return fallback
	}
	return d.Description
}

// DataSourceTestResult is the outcome of GET /data-sources/{id}/test
type DataSourceTestResult struct {
	Success    bool   `json:"success"`
	DataCount  int    `json:"data_count"`
	SampleData any    `json:"sample_data,omitempty"`
	Error      string `json:"error,omitempty"`
}
