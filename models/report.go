package models

import "ucode/ucode_go_report_builder_service/config"

// ReportQuery is the declarative query description produced by dashboard
// widgets. It carries no SQL; the query builder turns it into a
// parameterized statement.
type ReportQuery struct {
	Table        TableRef      `json:"table"`
	Columns      []string      `json:"columns,omitempty"`
	Aggregations []Aggregation `json:"aggregations,omitempty"`
	Filters      []Filter      `json:"filters,omitempty"`
	CombineWith  string        `json:"combine_with,omitempty"` // AND (default) or OR
	GroupBy      *GroupBySpec  `json:"group_by,omitempty"`
	Having       []Filter      `json:"having,omitempty"`
	OrderBy      []OrderBySpec `json:"order_by,omitempty"`
	Joins        []JoinSpec    `json:"joins,omitempty"`
	Limit        uint64        `json:"limit,omitempty"`
	Offset       uint64        `json:"offset,omitempty"`
	WidgetType   string        `json:"widget_type,omitempty"`
}

type TableRef struct {
	Schema string `json:"schema,omitempty"`
	Table  string `json:"table"`
	Alias  string `json:"alias,omitempty"`
}

type Filter struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    any    `json:"value,omitempty"`
}

type Aggregation struct {
	Column string `json:"column"`
	Type   string `json:"type"`
	Alias  string `json:"alias,omitempty"`
}

type TimeBucket struct {
	Column   string `json:"column"`
	Interval string `json:"interval"`
}

type GroupBySpec struct {
	Columns    []string    `json:"columns,omitempty"`
	TimeBucket *TimeBucket `json:"time_bucket,omitempty"`
	Rollup     bool        `json:"rollup,omitempty"`
	Cube       bool        `json:"cube,omitempty"`
}

type OrderBySpec struct {
	Expression string `json:"expression"`
	Direction  string `json:"direction,omitempty"`
	NullsFirst *bool  `json:"nulls_first,omitempty"`
}

type JoinSpec struct {
	Type      string   `json:"type"`
	Table     TableRef `json:"table"`
	Condition string   `json:"condition"`
}

func IsValidWidgetType(widgetType string) bool {
	return config.WIDGET_TYPES[widgetType]
}
