package models

// RunReportRequest binds a declarative query to the project whose database
// it should run against.
type RunReportRequest struct {
	ProjectId string      `json:"project_id"`
	Query     ReportQuery `json:"query"`
}

type RunReportResponse struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	Count    int              `json:"count"`
	Metadata QueryMeta        `json:"metadata"`
}

// QueryMeta mirrors the engine's classification for API consumers.
type QueryMeta struct {
	QueryType      string `json:"query_type"`
	HasAggregation bool   `json:"has_aggregation"`
	IsTimeSeries   bool   `json:"is_time_series"`
}

type BuildQueryResponse struct {
	SQL      string    `json:"sql"`
	Args     []any     `json:"args"`
	Metadata QueryMeta `json:"metadata"`
}

type ExportRequest struct {
	ProjectId  string      `json:"project_id"`
	FileName   string      `json:"file_name,omitempty"`
	SheetName  string      `json:"sheet_name,omitempty"`
	TemplateId string      `json:"template_id,omitempty"`
	Query      ReportQuery `json:"query"`
}

type ExportResponse struct {
	FileName string `json:"file_name"`
	Link     string `json:"link"`
	RowCount int    `json:"row_count"`
}
