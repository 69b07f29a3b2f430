package models

import "time"

// SavedQuery is a stored dashboard widget query definition.
type SavedQuery struct {
	Id          string      `json:"id"`
	ProjectId   string      `json:"project_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	WidgetType  string      `json:"widget_type,omitempty"`
	Definition  ReportQuery `json:"definition"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type SavedQueryPrimaryKey struct {
	Id        string `json:"id"`
	ProjectId string `json:"project_id"`
}

type GetAllSavedQueriesRequest struct {
	ProjectId string `json:"project_id"`
	Search    string `json:"search,omitempty"`
	Limit     uint64 `json:"limit,omitempty"`
	Offset    uint64 `json:"offset,omitempty"`
}

type GetAllSavedQueriesResponse struct {
	SavedQueries []SavedQuery `json:"saved_queries"`
	Count        int64        `json:"count"`
}

// QueryHistory is one executed report, recorded for reporting and cache
// invalidation decisions.
type QueryHistory struct {
	Id         string    `json:"id"`
	ProjectId  string    `json:"project_id"`
	Statement  string    `json:"statement"`
	QueryType  string    `json:"query_type"`
	DurationMs int64     `json:"duration_ms"`
	RowCount   int64     `json:"row_count"`
	CreatedAt  time.Time `json:"created_at"`
}
